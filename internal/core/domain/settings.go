package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// Default settings.
const (
	DefaultChunkSize         = 1000
	DefaultChunkOverlap      = 200
	DefaultTopK              = 3
	DefaultServerAddr        = "127.0.0.1:8000"
	DefaultRequestsPerSecond = 20.0
	DefaultBurst             = 40
	DefaultMaxUploadBytes    = 10 * 1024 * 1024
)

// DefaultSeparators returns the split points in preference order:
// paragraph, line, sentence, word.
func DefaultSeparators() []string {
	return []string{"\n\n", "\n", ". ", " "}
}

// DefaultFileSeparators returns the split points used for uploaded files:
// paragraph, line, word, then hard cuts.
func DefaultFileSeparators() []string {
	return []string{"\n\n", "\n", " ", ""}
}

// StorageDriver selects the metadata persistence adapter.
type StorageDriver string

// Available storage drivers.
const (
	// StorageSQLite stores metadata in a local SQLite file.
	StorageSQLite StorageDriver = "sqlite"

	// StoragePostgres stores metadata in PostgreSQL.
	StoragePostgres StorageDriver = "postgres"

	// StorageMemory keeps metadata in process memory.
	StorageMemory StorageDriver = "memory"
)

// IsValid returns true if the storage driver is recognised.
func (d StorageDriver) IsValid() bool {
	switch d {
	case StorageSQLite, StoragePostgres, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d StorageDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StorageDriver) Description() string {
	switch d {
	case StorageSQLite:
		return "SQLite (local file)"
	case StoragePostgres:
		return "PostgreSQL (server)"
	case StorageMemory:
		return "Memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// ChunkingSettings configures the chunker.
type ChunkingSettings struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// Overlap is the approximate number of characters shared by consecutive chunks.
	Overlap int

	// Separators are split points in preference order.
	Separators []string
}

// ForFiles returns c with the file separators in place of the configured ones.
func (c ChunkingSettings) ForFiles() ChunkingSettings {
	c.Separators = DefaultFileSeparators()
	return c
}

// Validate checks chunkSize > 0 and 0 <= overlap < chunkSize.
func (c ChunkingSettings) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, c.ChunkSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap must be in [0, %d), got %d", ErrInvalidInput, c.ChunkSize, c.Overlap)
	}
	return nil
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// TopK is the number of results returned when the caller does not ask for a count.
	TopK int
}

// ServerSettings holds HTTP transport configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RequestsPerSecond is the sustained request rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the maximum request burst.
	Burst int
}

// StorageSettings holds metadata persistence configuration.
type StorageSettings struct {
	// Driver selects the adapter.
	Driver StorageDriver

	// DataDir is the directory for the SQLite database.
	DataDir string

	// DSN is the PostgreSQL connection string.
	DSN string
}

// UploadSettings holds file upload limits.
type UploadSettings struct {
	// Dir is where uploaded files are stored.
	Dir string

	// MaxBytes is the largest accepted upload.
	MaxBytes int64
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Chunking ChunkingSettings
	Search   SearchSettings
	Server   ServerSettings
	Storage  StorageSettings
	Upload   UploadSettings
}

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			ChunkSize:  DefaultChunkSize,
			Overlap:    DefaultChunkOverlap,
			Separators: DefaultSeparators(),
		},
		Search: SearchSettings{
			TopK: DefaultTopK,
		},
		Server: ServerSettings{
			Addr:              DefaultServerAddr,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Storage: StorageSettings{
			Driver: StorageSQLite,
		},
		Upload: UploadSettings{
			MaxBytes: DefaultMaxUploadBytes,
		},
	}
}

// Validate checks all settings for consistency.
func (s AppSettings) Validate() error {
	if err := s.Chunking.Validate(); err != nil {
		return err
	}
	if s.Search.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidInput, s.Search.TopK)
	}
	if !s.Storage.Driver.IsValid() {
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidInput, s.Storage.Driver)
	}
	if s.Storage.Driver == StoragePostgres && strings.TrimSpace(s.Storage.DSN) == "" {
		return fmt.Errorf("%w: postgres storage requires a dsn", ErrInvalidInput)
	}
	if s.Upload.MaxBytes <= 0 {
		return fmt.Errorf("%w: upload max_bytes must be positive", ErrInvalidInput)
	}
	return nil
}
