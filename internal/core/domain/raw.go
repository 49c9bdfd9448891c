package domain

// RawFile represents an uploaded file before text extraction.
type RawFile struct {
	// Name is the original file name as supplied by the client.
	Name string

	// Path is where the file was stored, if it was written to disk.
	Path string

	// Extension is the lower-cased extension including the dot (e.g. ".pdf").
	Extension string

	// Content is the raw bytes.
	Content []byte
}
