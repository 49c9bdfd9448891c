package domain

import "time"

// Document is the metadata record for one upload.
// Chunk text is not part of the record; it lives only in the corpus.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title, or the file name for uploads.
	Title string

	// FilePath is the stored upload location. Empty for raw text uploads.
	FilePath string

	// TextContent is the raw text for direct text uploads.
	TextContent string

	// Processed is true once the document has been chunked into the corpus.
	Processed bool

	// ChunkCount is the number of chunks produced for this document.
	ChunkCount int

	// UploadedAt is when the record was created.
	UploadedAt time.Time
}

// Chunk is a searchable unit of a document.
// Chunks are immutable once appended to the corpus.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Source identifies the originating document (title or file name).
	Source string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int
}
