package driven

// ConfigStore provides access to settings persisted as dotted keys
// (e.g. "chunking.size"). Implementations own persistence and type coercion.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not an integer.
	GetInt(key string) int

	// GetFloat returns 0 when the key is missing or not numeric.
	GetFloat(key string) float64

	// GetStringSlice returns nil when the key is missing or not a list.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Keys returns every stored key, sorted.
	Keys() []string

	// Path returns the backing file path, or "" for non-file stores.
	Path() string
}
