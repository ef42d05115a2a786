package widgets

func strptr(value string) *string { return &value }

// BuiltinDefinitions returns the widget definitions shipped with the
// dashboard: progress chart, deadline, priority, latest activity, and
// contributor list.
func BuiltinDefinitions() []RegisterDefinitionInput {
	return []RegisterDefinitionInput{
		{
			Name:        "progress_chart",
			Description: strptr("Completion chart with per-category shares"),
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"show_percent": map[string]any{"type": "boolean"},
					"style":        map[string]any{"type": "string", "enum": []any{"bar", "donut"}},
				},
				"additionalProperties": false,
			},
			Defaults: map[string]any{
				"show_percent": true,
				"style":        "bar",
			},
		},
		{
			Name:        "deadline",
			Description: strptr("Project deadline with overdue highlighting"),
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"warn_days": map[string]any{"type": "integer", "minimum": 0},
				},
				"additionalProperties": false,
			},
			Defaults: map[string]any{
				"warn_days": 14,
			},
		},
		{
			Name:        "priority",
			Description: strptr("Project priority stars"),
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"as_stars": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
			Defaults: map[string]any{
				"as_stars": true,
			},
		},
		{
			Name:        "latest_activity",
			Description: strptr("Most recent translation event for the scope"),
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"show_actor": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
			Defaults: map[string]any{
				"show_actor": true,
			},
		},
		{
			Name:        "contributor_list",
			Description: strptr("Team contributors with avatars and roles"),
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit":        map[string]any{"type": "integer", "minimum": 1},
					"avatar_size":  map[string]any{"type": "integer", "minimum": 16},
					"show_roles":   map[string]any{"type": "boolean"},
					"managers_top": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
			Defaults: map[string]any{
				"limit":       10,
				"avatar_size": 44,
				"show_roles":  true,
			},
		},
	}
}
