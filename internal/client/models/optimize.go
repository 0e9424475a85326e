package models

import (
	"strings"
	"unicode/utf8"
)

const (
	// PromptMinLen is the shortest prompt accepted for optimization.
	PromptMinLen = 10
	// DefaultTemperature matches the backend default.
	DefaultTemperature = 0.2
)

// OptimizeRequest is the body of POST /api/v1/prompts/optimize.
type OptimizeRequest struct {
	APIKey          string  `json:"api_key"`
	OriginalPrompt  string  `json:"original_prompt"`
	TemplateID      int64   `json:"template_id"`
	Model           string  `json:"model"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens *int    `json:"max_output_tokens,omitempty"`
}

// Validate checks the optimizer form rules.
func (r OptimizeRequest) Validate() error {
	var errs ValidationErrors

	if r.TemplateID <= 0 {
		errs = errs.Add("template_id", "select a template")
	}
	if strings.TrimSpace(r.Model) == "" {
		errs = errs.Add("model", "select a model")
	}
	if r.Temperature < 0 {
		errs = errs.Add("temperature", "temperature must not be below 0")
	} else if r.Temperature > 1 {
		errs = errs.Add("temperature", "temperature must not be above 1")
	}

	switch l := utf8.RuneCountInString(strings.TrimSpace(r.OriginalPrompt)); {
	case l == 0:
		errs = errs.Add("original_prompt", "prompt is required")
	case l < PromptMinLen:
		errs = errs.Addf("original_prompt", "prompt must be at least %d characters", PromptMinLen)
	}

	if strings.TrimSpace(r.APIKey) == "" {
		errs = errs.Add("api_key", "api key is required")
	}
	if r.MaxOutputTokens != nil && *r.MaxOutputTokens <= 0 {
		errs = errs.Add("max_output_tokens", "max output tokens must be positive")
	}

	return errs.Err()
}

// OptimizeResult is the optimizer response.
type OptimizeResult struct {
	OptimizedPrompt     string `json:"optimized_prompt"`
	ImprovementAnalysis string `json:"improvement_analysis"`
	OriginalPrompt      string `json:"original_prompt"`
}
