package config

// Tree is the nested section -> key -> value configuration mapping.
// Values are scalars, []any lists, or nested map[string]any.
type Tree = map[string]any

// defaultTree returns a fresh baseline configuration. Every call allocates
// a new tree so callers can never mutate the shipped defaults.
func defaultTree() Tree {
	return Tree{
		"location": map[string]any{
			"latitude":  19.0760, // Mumbai
			"longitude": 72.8777,
			"timezone":  "Asia/Kolkata",
		},
		"calculation": map[string]any{
			"ayanamsa":         "Krishnamurti",
			"house_system":     "Placidus",
			"interval_minutes": 10,
			"aspects":          []any{0, 90, 180},
			"aspect_planets": []any{
				"Sun", "Moon", "Mercury", "Venus", "Mars",
				"Jupiter", "Saturn", "Rahu", "Ketu",
			},
		},
		"yoga": map[string]any{
			"days_past":        7,
			"days_future":      30,
			"types":            []any{"positive", "negative", "neutral"},
			"interval_minutes": 30,
		},
		"display": map[string]any{
			"show_aspects":       true,
			"show_dignities":     true,
			"north_indian_style": false,
			"use_24hr":           false,
			"show_seconds":       true,
		},
		"paths": map[string]any{
			"kp_data":   "", // KP_SL_Divisions.csv path
			"ephemeris": "", // Swiss Ephemeris path
		},
		"advanced": map[string]any{
			"cache_size_mb":         100,
			"parallel_calculations": true,
			"max_threads":           4,
		},
		"app": map[string]any{
			"first_run":       true,
			"last_run":        nil,
			"window_size":     []any{1024, 768},
			"window_position": []any{100, 100},
		},
	}
}
