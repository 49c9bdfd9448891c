package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultTitle labels text uploads submitted without a title.
const DefaultTitle = "Untitled document"

// IngestService records uploads and appends their chunks to the corpus.
type IngestService struct {
	docStore    driven.DocumentStore
	corpus      driven.Corpus
	pipeline    driven.PostProcessorPipeline
	files       driven.PostProcessorPipeline
	normalisers driven.NormaliserRegistry
	upload      domain.UploadSettings
	now         func() time.Time
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithFilePipeline chunks file uploads with p instead of the text pipeline.
func WithFilePipeline(p driven.PostProcessorPipeline) IngestOption {
	return func(s *IngestService) {
		if p != nil {
			s.files = p
		}
	}
}

// NewIngestService creates a new ingest service.
// An empty upload directory defaults to a docchat-uploads folder in the
// system temp directory; a non-positive size cap defaults to 10 MiB.
// Files share the text pipeline unless WithFilePipeline says otherwise.
func NewIngestService(
	docStore driven.DocumentStore,
	corpus driven.Corpus,
	pipeline driven.PostProcessorPipeline,
	normalisers driven.NormaliserRegistry,
	upload domain.UploadSettings,
	opts ...IngestOption,
) *IngestService {
	if upload.Dir == "" {
		upload.Dir = filepath.Join(os.TempDir(), "docchat-uploads")
	}
	if upload.MaxBytes <= 0 {
		upload.MaxBytes = domain.DefaultMaxUploadBytes
	}
	s := &IngestService{
		docStore:    docStore,
		corpus:      corpus,
		pipeline:    pipeline,
		files:       pipeline,
		normalisers: normalisers,
		upload:      upload,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SupportedExtensions returns the accepted file extensions.
func (s *IngestService) SupportedExtensions() []string {
	return s.normalisers.SupportedExtensions()
}

// UploadText records text under title and chunks it into the corpus.
func (s *IngestService) UploadText(ctx context.Context, title, text string) domain.Response {
	if strings.TrimSpace(text) == "" {
		return s.fail(domain.ErrEmptyText)
	}
	if int64(len(text)) > s.upload.MaxBytes {
		return s.fail(domain.TooLarge(domain.ErrTextTooLarge, s.upload.MaxBytes))
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	doc := &domain.Document{
		ID:          uuid.New().String(),
		Title:       title,
		TextContent: text,
		UploadedAt:  s.now(),
	}
	if err := s.docStore.Create(ctx, doc); err != nil {
		logger.Error("create document record", "title", title, "error", err)
		return s.fail(fmt.Errorf("saving document: %w", err))
	}

	n, err := s.chunkInto(ctx, s.pipeline, doc, title, text)
	if err != nil {
		s.rollback(ctx, doc)
		return s.fail(err)
	}

	logger.Info("text uploaded", "document", doc.ID, "title", title, "chunks", n)
	resp := s.succeed(fmt.Sprintf("Text uploaded (%d chunks created)", n))
	resp.ChunkCount = n
	resp.DocumentID = doc.ID
	return resp
}

// UploadFile stores the file, records it, extracts its text and chunks it
// into the corpus. Any failure after the record is created removes both the
// record and the stored file.
func (s *IngestService) UploadFile(ctx context.Context, name string, r io.Reader, size int64) domain.Response {
	name = filepath.Base(strings.TrimSpace(name))
	if r == nil || name == "" || name == "." || name == string(filepath.Separator) {
		return s.fail(domain.ErrMissingFile)
	}
	if size > s.upload.MaxBytes {
		return s.fail(domain.TooLarge(domain.ErrFileTooLarge, s.upload.MaxBytes))
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !s.normalisers.Supports(ext) {
		return s.fail(domain.ErrUnsupportedFormat)
	}

	content, err := io.ReadAll(io.LimitReader(r, s.upload.MaxBytes+1))
	if err != nil {
		return s.fail(fmt.Errorf("reading upload: %w", err))
	}
	if int64(len(content)) > s.upload.MaxBytes {
		return s.fail(domain.TooLarge(domain.ErrFileTooLarge, s.upload.MaxBytes))
	}

	path, err := s.store(name, content)
	if err != nil {
		logger.Error("store upload", "file", name, "error", err)
		return s.fail(fmt.Errorf("storing upload: %w", err))
	}

	doc := &domain.Document{
		ID:         uuid.New().String(),
		Title:      name,
		FilePath:   path,
		UploadedAt: s.now(),
	}
	if err := s.docStore.Create(ctx, doc); err != nil {
		removeFile(path)
		logger.Error("create document record", "file", name, "error", err)
		return s.fail(fmt.Errorf("saving document: %w", err))
	}

	result, err := s.normalisers.Normalise(ctx, &domain.RawFile{
		Name:      name,
		Path:      path,
		Extension: ext,
		Content:   content,
	})
	if err != nil {
		s.rollback(ctx, doc)
		return s.fail(err)
	}

	source := result.Source
	if source == "" {
		source = name
	}
	n, err := s.chunkInto(ctx, s.files, doc, source, result.Text)
	if err != nil {
		s.rollback(ctx, doc)
		return s.fail(err)
	}

	logger.Info("file uploaded", "document", doc.ID, "file", name, "chunks", n)
	resp := s.succeed(fmt.Sprintf("File uploaded (%d chunks added)", n))
	resp.ChunkCount = n
	resp.DocumentID = doc.ID
	return resp
}

// chunkInto splits text with pipeline, appends the chunks and marks doc processed.
func (s *IngestService) chunkInto(
	ctx context.Context, pipeline driven.PostProcessorPipeline, doc *domain.Document, source, text string,
) (int, error) {
	chunks, err := pipeline.Process(ctx, &driven.ChunkSource{
		DocumentID: doc.ID,
		Source:     source,
		Text:       text,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: chunking: %w", domain.ErrLoadFailed, err)
	}

	n := s.corpus.Append(chunks...)

	doc.Processed = true
	doc.ChunkCount = n
	if err := s.docStore.Update(ctx, doc); err != nil {
		// The chunks are already searchable; only the record lags behind.
		logger.Warn("mark document processed", "document", doc.ID, "error", err)
	}
	return n, nil
}

// store writes content under the upload directory with a unique prefix.
func (s *IngestService) store(name string, content []byte) (string, error) {
	if err := os.MkdirAll(s.upload.Dir, 0o750); err != nil {
		return "", err
	}
	path := filepath.Join(s.upload.Dir, uuid.New().String()+"_"+name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (s *IngestService) rollback(ctx context.Context, doc *domain.Document) {
	if err := s.docStore.Delete(ctx, doc.ID); err != nil {
		logger.Error("rollback document record", "document", doc.ID, "error", err)
	}
	if doc.FilePath != "" {
		removeFile(doc.FilePath)
	}
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("remove stored upload", "path", path, "error", err)
	}
}

func (s *IngestService) succeed(msg string) domain.Response {
	resp := domain.Success(msg)
	resp.DocumentCount = s.corpus.Len()
	return resp
}

func (s *IngestService) fail(err error) domain.Response {
	if !domain.IsValidation(err) {
		logger.Warn("upload failed", "error", err)
	}
	resp := domain.Failure(err)
	resp.DocumentCount = s.corpus.Len()
	return resp
}
