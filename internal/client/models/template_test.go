package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validInput() TemplateInput {
	return TemplateInput{
		Name:        "Summarizer",
		Description: strPtr("shortens long prompts"),
		Category:    "general",
		Content:     "You are a prompt engineer. Rewrite the prompt to be concise.",
	}
}

func TestTemplateInput_Validate_OK(t *testing.T) {
	require.NoError(t, validInput().Validate())

	in := validInput()
	in.Description = nil
	require.NoError(t, in.Validate())
}

func TestTemplateInput_Validate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TemplateInput)
		field  string
	}{
		{"empty content", func(in *TemplateInput) { in.Content = "" }, "content"},
		{"blank content", func(in *TemplateInput) { in.Content = "  \n\t " }, "content"},
		{"content too long", func(in *TemplateInput) { in.Content = strings.Repeat("x", TemplateContentMaxLen+1) }, "content"},
		{"empty name", func(in *TemplateInput) { in.Name = " " }, "name"},
		{"name too long", func(in *TemplateInput) { in.Name = strings.Repeat("n", TemplateNameMaxLen+1) }, "name"},
		{"description too long", func(in *TemplateInput) { in.Description = strPtr(strings.Repeat("d", TemplateDescriptionMaxLen+1)) }, "description"},
		{"no category", func(in *TemplateInput) { in.Category = "" }, "category"},
		{"category too long", func(in *TemplateInput) { in.Category = strings.Repeat("c", TemplateCategoryMaxLen+1) }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, common.ErrValidation)

			var verr ValidationErrors
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Field(tt.field), "expected a message for %s, got %v", tt.field, verr)
		})
	}
}

func TestTemplateInput_Validate_LimitsAreInclusiveAndCountRunes(t *testing.T) {
	in := validInput()
	in.Content = strings.Repeat("字", TemplateContentMaxLen)
	in.Name = strings.Repeat("名", TemplateNameMaxLen)
	require.NoError(t, in.Validate())
}

func TestTemplateInput_Normalize(t *testing.T) {
	in := TemplateInput{Name: "  a ", Description: strPtr("   "), Category: " code ", Content: "\nbody\n"}
	n := in.Normalize()

	assert.Equal(t, "a", n.Name)
	require.NotNil(t, n.Description)
	assert.Equal(t, "", *n.Description, "blank description is kept so it can clear the field")
	assert.Nil(t, TemplateInput{Name: "a"}.Normalize().Description)
	assert.Equal(t, "code", n.Category)
	assert.Equal(t, "body", n.Content)
}

func TestInputFrom(t *testing.T) {
	tpl := Template{ID: 3, Name: "n", Description: strPtr("d"), Category: "c", Content: "x"}
	assert.Equal(t, TemplateInput{Name: "n", Description: strPtr("d"), Category: "c", Content: "x"}, InputFrom(tpl))
	assert.Equal(t, "d", tpl.DescriptionText())
	assert.Equal(t, "", Template{}.DescriptionText())
}
