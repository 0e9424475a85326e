package models

// Model is an LLM offered by the backend for optimization.
type Model struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Label returns the display name, falling back to the model id.
func (m Model) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}
