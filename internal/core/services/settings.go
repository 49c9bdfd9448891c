package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyChunkSize       = "chunking.size"
	KeyChunkOverlap    = "chunking.overlap"
	KeyChunkSeparators = "chunking.separators"
	KeySearchTopK      = "search.top_k"
	KeyServerAddr      = "server.addr"
	KeyServerRPS       = "server.rps"
	KeyServerBurst     = "server.burst"
	KeyStorageDriver   = "storage.driver"
	KeyStorageDSN      = "storage.dsn"
	KeyStorageDataDir  = "storage.data_dir"
	KeyUploadDir       = "upload.dir"
	KeyUploadMaxBytes  = "upload.max_bytes"
)

// Environment variables that override stored settings.
const (
	EnvServerAddr    = "DOCCHAT_ADDR"
	EnvStorageDriver = "DOCCHAT_STORAGE_DRIVER"
	EnvStorageDSN    = "DOCCHAT_DSN"
)

var settingsKeys = []string{
	KeyChunkSize,
	KeyChunkOverlap,
	KeyChunkSeparators,
	KeySearchTopK,
	KeyServerAddr,
	KeyServerRPS,
	KeyServerBurst,
	KeyStorageDriver,
	KeyStorageDSN,
	KeyStorageDataDir,
	KeyUploadDir,
	KeyUploadMaxBytes,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chunking: domain.ChunkingSettings{
			ChunkSize:  s.getInt(KeyChunkSize, defaults.Chunking.ChunkSize),
			Overlap:    s.getInt(KeyChunkOverlap, defaults.Chunking.Overlap),
			Separators: s.getStringSlice(KeyChunkSeparators, defaults.Chunking.Separators),
		},
		Search: domain.SearchSettings{
			TopK: s.getInt(KeySearchTopK, defaults.Search.TopK),
		},
		Server: domain.ServerSettings{
			Addr:              s.getString(KeyServerAddr, defaults.Server.Addr),
			RequestsPerSecond: s.getFloat(KeyServerRPS, defaults.Server.RequestsPerSecond),
			Burst:             s.getInt(KeyServerBurst, defaults.Server.Burst),
		},
		Storage: domain.StorageSettings{
			Driver:  s.getDriver(defaults.Storage.Driver),
			DataDir: s.configStore.GetString(KeyStorageDataDir),
			DSN:     s.configStore.GetString(KeyStorageDSN),
		},
		Upload: domain.UploadSettings{
			Dir:      s.configStore.GetString(KeyUploadDir),
			MaxBytes: int64(s.getInt(KeyUploadMaxBytes, int(defaults.Upload.MaxBytes))),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyChunkSize, settings.Chunking.ChunkSize},
		{KeyChunkOverlap, settings.Chunking.Overlap},
		{KeyChunkSeparators, settings.Chunking.Separators},
		{KeySearchTopK, settings.Search.TopK},
		{KeyServerAddr, settings.Server.Addr},
		{KeyServerRPS, settings.Server.RequestsPerSecond},
		{KeyServerBurst, settings.Server.Burst},
		{KeyStorageDriver, settings.Storage.Driver.String()},
		{KeyStorageDSN, settings.Storage.DSN},
		{KeyStorageDataDir, settings.Storage.DataDir},
		{KeyUploadDir, settings.Upload.Dir},
		{KeyUploadMaxBytes, settings.Upload.MaxBytes},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key, validates the resulting settings and saves them.
// Separators are given comma-separated with Go escapes (e.g. `\n\n,\n,. , `).
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyChunkSize:
		settings.Chunking.ChunkSize, err = parseInt(key, value)
	case KeyChunkOverlap:
		settings.Chunking.Overlap, err = parseInt(key, value)
	case KeyChunkSeparators:
		settings.Chunking.Separators, err = ParseSeparators(value)
	case KeySearchTopK:
		settings.Search.TopK, err = parseInt(key, value)
	case KeyServerAddr:
		settings.Server.Addr = value
	case KeyServerRPS:
		settings.Server.RequestsPerSecond, err = strconv.ParseFloat(value, 64)
		if err != nil {
			err = fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
	case KeyServerBurst:
		settings.Server.Burst, err = parseInt(key, value)
	case KeyStorageDriver:
		settings.Storage.Driver = domain.StorageDriver(value)
	case KeyStorageDSN:
		settings.Storage.DSN = value
	case KeyStorageDataDir:
		settings.Storage.DataDir = value
	case KeyUploadDir:
		settings.Upload.Dir = value
	case KeyUploadMaxBytes:
		var n int
		n, err = parseInt(key, value)
		settings.Upload.MaxBytes = int64(n)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys returns every recognised settings key.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingsKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ApplyEnvOverrides replaces settings with values from the environment.
// lookup is typically os.LookupEnv.
func ApplyEnvOverrides(settings *domain.AppSettings, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvServerAddr); ok && v != "" {
		settings.Server.Addr = v
	}
	if v, ok := lookup(EnvStorageDriver); ok && v != "" {
		settings.Storage.Driver = domain.StorageDriver(strings.ToLower(v))
	}
	if v, ok := lookup(EnvStorageDSN); ok && v != "" {
		settings.Storage.DSN = v
	}
}

// SettingValue formats the value of key in settings the way Set accepts it.
func SettingValue(settings *domain.AppSettings, key string) (string, bool) {
	switch key {
	case KeyChunkSize:
		return strconv.Itoa(settings.Chunking.ChunkSize), true
	case KeyChunkOverlap:
		return strconv.Itoa(settings.Chunking.Overlap), true
	case KeyChunkSeparators:
		return FormatSeparators(settings.Chunking.Separators), true
	case KeySearchTopK:
		return strconv.Itoa(settings.Search.TopK), true
	case KeyServerAddr:
		return settings.Server.Addr, true
	case KeyServerRPS:
		return strconv.FormatFloat(settings.Server.RequestsPerSecond, 'g', -1, 64), true
	case KeyServerBurst:
		return strconv.Itoa(settings.Server.Burst), true
	case KeyStorageDriver:
		return settings.Storage.Driver.String(), true
	case KeyStorageDSN:
		return settings.Storage.DSN, true
	case KeyStorageDataDir:
		return settings.Storage.DataDir, true
	case KeyUploadDir:
		return settings.Upload.Dir, true
	case KeyUploadMaxBytes:
		return strconv.FormatInt(settings.Upload.MaxBytes, 10), true
	}
	return "", false
}

// FormatSeparators is the inverse of ParseSeparators.
func FormatSeparators(seps []string) string {
	parts := make([]string, len(seps))
	for i, sep := range seps {
		q := strconv.Quote(sep)
		parts[i] = strings.ReplaceAll(q[1:len(q)-1], `\"`, `"`)
	}
	return strings.Join(parts, ",")
}

// ParseSeparators splits a comma-separated list, interpreting Go escapes
// in each element.
func ParseSeparators(value string) ([]string, error) {
	parts := strings.Split(value, ",")
	seps := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		sep, err := strconv.Unquote(`"` + strings.ReplaceAll(p, `"`, `\"`) + `"`)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid separator %q", domain.ErrInvalidInput, p)
		}
		seps = append(seps, sep)
	}
	if len(seps) == 0 {
		return nil, fmt.Errorf("%w: at least one separator is required", domain.ErrInvalidInput)
	}
	return seps, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// Helper methods for reading config with defaults; a missing key yields the default.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getDriver(defaultVal domain.StorageDriver) domain.StorageDriver {
	if d := domain.StorageDriver(s.configStore.GetString(KeyStorageDriver)); d.IsValid() {
		return d
	}
	return defaultVal
}
