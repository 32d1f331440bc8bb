package config

// Config is a read-only view over decoded settings.
// Accessors fall back to the supplied default when a key is absent
// or holds a value of another type.
type Config struct {
	data map[string]any
}

// New wraps data. A nil map behaves as empty.
func New(data map[string]any) Config {
	if data == nil {
		data = map[string]any{}
	}
	return Config{data: data}
}

func lookup[T any](c Config, key string, fallback T) T {
	if v, ok := c.data[key].(T); ok {
		return v
	}
	return fallback
}

// String returns the string at key.
func (c Config) String(key, fallback string) string {
	return lookup(c, key, fallback)
}

// Bool returns the boolean at key.
func (c Config) Bool(key string, fallback bool) bool {
	return lookup(c, key, fallback)
}

// Int returns the integer at key. Whole float64 values (as decoded
// from JSON) convert; fractional ones fall back.
func (c Config) Int(key string, fallback int) int {
	switch v := c.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return fallback
}

// Map returns the nested mapping at key, or nil.
func (c Config) Map(key string) map[string]any {
	return lookup[map[string]any](c, key, nil)
}

// Has reports whether key is present.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw exposes the underlying map. Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}
