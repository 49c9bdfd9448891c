package domain

// Status tags a boundary Response as success or error.
type Status string

// Response statuses.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Response is the result value every transport returns.
// Failures are carried here instead of crossing the boundary as errors.
type Response struct {
	// Status is success or error.
	Status Status

	// Message is the user-facing text (upload message or chat reply).
	Message string

	// DocumentCount is the number of chunks in the corpus after the operation.
	DocumentCount int

	// ChunkCount is the number of chunks produced by an upload.
	ChunkCount int

	// DocumentID is the metadata record created by an upload.
	DocumentID string

	// Results are the ranked matches backing a chat reply, if any.
	Results []SearchResult
}

// Success returns a success Response with the given message.
func Success(message string) Response {
	return Response{Status: StatusSuccess, Message: message}
}

// Failure returns an error Response carrying err's message.
func Failure(err error) Response {
	if err == nil {
		return Response{Status: StatusError, Message: "unknown error"}
	}
	return Response{Status: StatusError, Message: err.Error()}
}

// OK reports whether the response is a success.
func (r Response) OK() bool {
	return r.Status == StatusSuccess
}
