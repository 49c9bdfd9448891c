package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// IngestService accepts uploads and chunks them into the corpus.
// Every failure is reported in the returned Response, never as an error.
type IngestService interface {
	// UploadText records and chunks raw text under the given title.
	UploadText(ctx context.Context, title, text string) domain.Response

	// UploadFile stores, records, loads and chunks a file.
	// size is the declared length of r; a negative size means unknown.
	UploadFile(ctx context.Context, name string, r io.Reader, size int64) domain.Response

	// SupportedExtensions returns the accepted file extensions.
	SupportedExtensions() []string
}
