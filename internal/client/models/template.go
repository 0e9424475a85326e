package models

import (
	"strings"
	"unicode/utf8"
)

// Template field limits enforced before any network call.
const (
	TemplateNameMaxLen        = 100
	TemplateDescriptionMaxLen = 500
	TemplateCategoryMaxLen    = 50
	TemplateContentMaxLen     = 5000
)

// Template is a prompt-optimization template. Default templates are shipped
// by the server and cannot be edited or deleted.
type Template struct {
	ID          int64     `json:"template_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsDefault   bool      `json:"is_default"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	CreatedAt   Timestamp `json:"created_at"`
}

// DescriptionText returns the description or "" when unset.
func (t Template) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// TemplateInput is the body of template create and update requests.
type TemplateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
	Content     string  `json:"content"`
}

// Normalize trims surrounding whitespace. A nil description stays nil and
// is omitted from the request; a blank one is sent as "" and clears it.
func (in TemplateInput) Normalize() TemplateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Content = strings.TrimSpace(in.Content)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		in.Description = &d
	}
	return in
}

// Validate checks the form rules. Lengths are counted in runes after
// trimming.
func (in TemplateInput) Validate() error {
	n := in.Normalize()
	var errs ValidationErrors

	switch l := utf8.RuneCountInString(n.Name); {
	case l == 0:
		errs = errs.Add("name", "name is required")
	case l > TemplateNameMaxLen:
		errs = errs.Addf("name", "name must be at most %d characters", TemplateNameMaxLen)
	}

	if n.Description != nil && utf8.RuneCountInString(*n.Description) > TemplateDescriptionMaxLen {
		errs = errs.Addf("description", "description must be at most %d characters", TemplateDescriptionMaxLen)
	}

	switch l := utf8.RuneCountInString(n.Category); {
	case l == 0:
		errs = errs.Add("category", "category is required")
	case l > TemplateCategoryMaxLen:
		errs = errs.Addf("category", "category must be at most %d characters", TemplateCategoryMaxLen)
	}

	switch l := utf8.RuneCountInString(n.Content); {
	case l == 0:
		errs = errs.Add("content", "content is required")
	case l > TemplateContentMaxLen:
		errs = errs.Addf("content", "content must be at most %d characters", TemplateContentMaxLen)
	}

	return errs.Err()
}

// InputFrom builds an update form prefilled with t's fields.
func InputFrom(t Template) TemplateInput {
	return TemplateInput{
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Content:     t.Content,
	}
}
