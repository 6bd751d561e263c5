package lint

// Options holds the rule-specific options from configuration.
type Options map[string]any

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts Options, key string, defaultVal T) T {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetInt extracts an int option. YAML and JSON decoders hand numbers over as
// int, int64 or float64 depending on the source.
func (o Options) GetInt(key string, defaultVal int) int {
	switch n := o[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return defaultVal
	}
}

// GetString extracts a string option.
func (o Options) GetString(key string, defaultVal string) string {
	return GetOption(o, key, defaultVal)
}

// GetBool extracts a bool option.
func (o Options) GetBool(key string, defaultVal bool) bool {
	return GetOption(o, key, defaultVal)
}

// GetStringSlice extracts a string list option.
func (o Options) GetStringSlice(key string, defaultVal []string) []string {
	switch s := o[key].(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return defaultVal
	}
}

// Has reports whether key is set.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}
