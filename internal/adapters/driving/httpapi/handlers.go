package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/services"
)

// envelope is the JSON body of every response.
type envelope struct {
	Status        domain.Status `json:"status"`
	Message       string        `json:"message,omitempty"`
	Response      string        `json:"response,omitempty"`
	DocumentCount *int          `json:"document_count,omitempty"`
	ChunkCount    int           `json:"chunk_count,omitempty"`
	DocumentID    string        `json:"document_id,omitempty"`
	Results       []resultBody  `json:"results,omitempty"`
}

// searchEnvelope always carries the results key, even when nothing matched.
type searchEnvelope struct {
	Status        domain.Status `json:"status"`
	DocumentCount int           `json:"document_count"`
	Results       []resultBody  `json:"results"`
}

type documentsEnvelope struct {
	Status        domain.Status  `json:"status"`
	DocumentCount int            `json:"document_count"`
	Documents     []documentBody `json:"documents"`
}

type resultBody struct {
	Source  string `json:"source"`
	Excerpt string `json:"excerpt"`
	Score   int    `json:"score"`
}

type documentBody struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Processed  bool      `json:"processed"`
	ChunkCount int       `json:"chunk_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type uploadTextRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

func errorBody(msg string) envelope {
	return envelope{Status: domain.StatusError, Message: msg}
}

// uploadBody renders an ingest Response.
func uploadBody(resp domain.Response) envelope {
	body := envelope{
		Status:     resp.Status,
		Message:    resp.Message,
		ChunkCount: resp.ChunkCount,
		DocumentID: resp.DocumentID,
	}
	count := resp.DocumentCount
	body.DocumentCount = &count
	return body
}

func resultBodies(results []domain.SearchResult) []resultBody {
	out := make([]resultBody, len(results))
	for i, r := range results {
		out[i] = resultBody{
			Source:  r.Chunk.Source,
			Excerpt: services.Excerpt(r.Chunk.Content, services.ExcerptLength),
			Score:   r.Score,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reads at most limit bytes of r's body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(v)
}

// isTooLarge reports whether err came from a body over its byte cap.
func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// POST /api/upload-text/  {"title": "...", "text": "..."}
// The body may exceed the text cap by uploadSlack for the JSON framing;
// the ingest service checks the decoded text itself.
func (s *Server) handleUploadText(w http.ResponseWriter, r *http.Request) {
	var req uploadTextRequest
	if err := decodeJSON(w, r, &req, s.opts.MaxUploadBytes+uploadSlack); err != nil {
		if isTooLarge(err) {
			resp := domain.Failure(domain.TooLarge(domain.ErrTextTooLarge, s.opts.MaxUploadBytes))
			resp.DocumentCount = s.ports.Search.CorpusSize()
			writeJSON(w, http.StatusRequestEntityTooLarge, uploadBody(resp))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody(msgInvalidJSON))
		return
	}
	resp := s.ports.Ingest.UploadText(r.Context(), req.Title, req.Text)
	writeJSON(w, http.StatusOK, uploadBody(resp))
}

// POST /api/upload-file/  multipart form with a "file" field.
// The part is streamed to the ingest service, which enforces the size cap.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+uploadSlack)

	mr, err := r.MultipartReader()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(msgMultipartForm))
		return
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(msgMultipartForm))
			return
		}
		if part.FormName() != "file" || part.FileName() == "" {
			_ = part.Close()
			continue
		}
		resp := s.ports.Ingest.UploadFile(r.Context(), part.FileName(), part, -1)
		_ = part.Close()
		writeJSON(w, http.StatusOK, uploadBody(resp))
		return
	}

	writeJSON(w, http.StatusOK, uploadBody(domain.Failure(domain.ErrMissingFile)))
}

// POST /api/chat/  {"message": "..."}
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req, maxQueryBodyBytes); err != nil {
		status, msg := http.StatusBadRequest, msgInvalidJSON
		if isTooLarge(err) {
			status, msg = http.StatusRequestEntityTooLarge, msgBodyTooLarge
		}
		writeJSON(w, status, envelope{Status: domain.StatusError, Response: msg})
		return
	}
	resp := s.ports.Chat.Reply(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, envelope{
		Status:   resp.Status,
		Response: resp.Message,
		Results:  resultBodies(resp.Results),
	})
}

// POST /api/search/  {"query": "...", "k": 3}
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req, maxQueryBodyBytes); err != nil {
		if isTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody(msgBodyTooLarge))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody(msgInvalidJSON))
		return
	}
	results, err := s.ports.Search.Search(r.Context(), req.Query, req.K)
	if err != nil {
		writeJSON(w, http.StatusOK, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, searchEnvelope{
		Status:        domain.StatusSuccess,
		DocumentCount: s.ports.Search.CorpusSize(),
		Results:       resultBodies(results),
	})
}

// GET /api/documents/
func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if s.ports.Documents == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody(msgNoDocuments))
		return
	}
	docs, err := s.ports.Documents.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	out := make([]documentBody, len(docs))
	for i, d := range docs {
		out[i] = documentBody{
			ID:         d.ID,
			Title:      d.Title,
			Processed:  d.Processed,
			ChunkCount: d.ChunkCount,
			UploadedAt: d.UploadedAt,
		}
	}
	writeJSON(w, http.StatusOK, documentsEnvelope{
		Status:        domain.StatusSuccess,
		DocumentCount: len(out),
		Documents:     out,
	})
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	count := s.ports.Search.CorpusSize()
	writeJSON(w, http.StatusOK, envelope{Status: domain.StatusSuccess, DocumentCount: &count})
}
