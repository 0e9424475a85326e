package models

// HistoryEntry is one optimization run recorded by the server.
type HistoryEntry struct {
	ID              int64     `json:"history_id"`
	OriginalPrompt  string    `json:"original_prompt"`
	OptimizedPrompt *string   `json:"optimized_prompt"`
	ModelUsed       string    `json:"model_used"`
	Temperature     float64   `json:"temperature"`
	CreatedAt       Timestamp `json:"created_at"`
}

// OptimizedText returns the optimized prompt or "" when the run produced none.
func (h HistoryEntry) OptimizedText() string {
	if h.OptimizedPrompt == nil {
		return ""
	}
	return *h.OptimizedPrompt
}
