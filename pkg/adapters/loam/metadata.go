package loam

// PackMetadata is the frontmatter (or whole document, for JSON and YAML files) of a
// rule pack document. Rules and variables stay generic here and are decoded by
// rulepack.Decode, so every source applies the same structural checks.
type PackMetadata struct {
	ID          string         `json:"id" mapstructure:"id"`
	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description" mapstructure:"description"`
	Rules       any            `json:"rules" mapstructure:"rules"`
	Variables   map[string]any `json:"variables" mapstructure:"variables"`
}

func (m PackMetadata) record(fallbackID, body string) map[string]any {
	id := m.ID
	if id == "" {
		id = fallbackID
	}
	description := m.Description
	if description == "" {
		description = body
	}

	record := map[string]any{
		"id":    id,
		"rules": m.Rules,
	}
	if m.Name != "" {
		record["name"] = m.Name
	}
	if description != "" {
		record["description"] = description
	}
	if m.Variables != nil {
		record["variables"] = m.Variables
	}
	return record
}
