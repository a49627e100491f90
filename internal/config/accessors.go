package config

// Typed accessors over Get. JSON unmarshals every number as float64, so
// the integer accessors coerce; callers get stable types either way.

func (s *Store) GetString(section, key, def string) string {
	if v, ok := s.Get(section, key, nil).(string); ok {
		return v
	}
	return def
}

func (s *Store) GetBool(section, key string, def bool) bool {
	if v, ok := s.Get(section, key, nil).(bool); ok {
		return v
	}
	return def
}

func (s *Store) GetInt(section, key string, def int) int {
	if v, ok := asInt(s.Get(section, key, nil)); ok {
		return v
	}
	return def
}

func (s *Store) GetFloat(section, key string, def float64) float64 {
	switch v := s.Get(section, key, nil).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// GetInts returns the list at section/key coerced to ints. Lists with any
// non-numeric element fall back to def.
func (s *Store) GetInts(section, key string, def []int) []int {
	list, ok := s.Get(section, key, nil).([]any)
	if !ok {
		return def
	}

	out := make([]int, 0, len(list))
	for _, item := range list {
		n, ok := asInt(item)
		if !ok {
			return def
		}
		out = append(out, n)
	}
	return out
}

func (s *Store) GetStrings(section, key string, def []string) []string {
	list, ok := s.Get(section, key, nil).([]any)
	if !ok {
		return def
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		str, ok := item.(string)
		if !ok {
			return def
		}
		out = append(out, str)
	}
	return out
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
