package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/services"
	"github.com/dmitrijs2005/promptmaster/internal/common"
)

// clearValue entered at an edit prompt empties an optional field.
const clearValue = "-"

const templateUsage = "usage: template add | template edit <id> | template delete <id> | template show <id>"

// Templates lists templates, optionally limited to one category.
func (a *App) Templates(ctx context.Context, args []string) error {
	if _, err := a.templateService.List(ctx, false); err != nil {
		return err
	}

	category := services.AllCategories
	if len(args) > 0 {
		category = strings.Join(args, " ")
	}

	a.printf("Categories: %s\n", strings.Join(a.templateService.Categories(), ", "))

	list := a.templateService.Filter(category, "")
	if len(list) == 0 {
		a.printf("No templates\n")
		return nil
	}
	for _, t := range list {
		a.printTemplateLine(t)
	}
	return nil
}

// Template dispatches the template subcommands.
func (a *App) Template(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(templateUsage)
	}

	sub := args[0]
	if sub == "add" {
		return a.addTemplate(ctx)
	}

	if len(args) < 2 {
		return errors.New(templateUsage)
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	switch sub {
	case "show":
		return a.showTemplate(ctx, id)
	case "edit":
		return a.editTemplate(ctx, id)
	case "delete":
		return a.deleteTemplate(ctx, id)
	}
	return errors.New(templateUsage)
}

func (a *App) printTemplateLine(t models.Template) {
	suffix := ""
	if t.IsDefault {
		suffix = " (default)"
	}
	a.printf("  #%-5d [%s] %s%s\n", t.ID, t.Category, t.Name, suffix)
}

func (a *App) showTemplate(ctx context.Context, id int64) error {
	t, err := a.templateService.Get(ctx, id)
	if err != nil {
		return err
	}

	a.printTemplateLine(*t)
	if d := t.DescriptionText(); d != "" {
		a.printf("  %s\n", d)
	}
	a.printf("  created %s\n\n%s\n", t.CreatedAt.Local().Format(time.DateTime), t.Content)
	return nil
}

func (a *App) addTemplate(ctx context.Context) error {
	var in models.TemplateInput
	var err error

	if in.Name, err = GetSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if in.Category, err = GetSimpleText(a.reader, "Category", a.out); err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	if description != "" {
		in.Description = &description
	}
	if in.Content, err = GetMultiline(a.reader, "Content", a.out); err != nil {
		return err
	}

	t, err := a.templateService.Create(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Template #%d created\n", t.ID)
	return nil
}

// editTemplate prompts for each field showing the current value; empty input
// keeps it and "-" clears the description.
func (a *App) editTemplate(ctx context.Context, id int64) error {
	current, err := a.templateService.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.IsDefault {
		return common.ErrImmutableTemplate
	}

	in := models.InputFrom(*current)

	if in.Name, err = a.promptKeep("Name", in.Name); err != nil {
		return err
	}
	if in.Category, err = a.promptKeep("Category", in.Category); err != nil {
		return err
	}
	description, err := a.promptKeep("Description ('"+clearValue+"' clears)", current.DescriptionText())
	if err != nil {
		return err
	}
	if description == clearValue {
		description = ""
	}
	in.Description = &description

	content, err := GetMultiline(a.reader, "Content (empty keeps the current content)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		in.Content = content
	}

	t, err := a.templateService.Update(ctx, id, in)
	if err != nil {
		return err
	}
	a.printf("Template #%d updated\n", t.ID)
	return nil
}

func (a *App) deleteTemplate(ctx context.Context, id int64) error {
	t, err := a.templateService.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.IsDefault {
		return common.ErrImmutableTemplate
	}

	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete template #%d %q?", t.ID, t.Name), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled\n")
		return nil
	}

	if err := a.templateService.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Template #%d deleted\n", id)
	return nil
}

func (a *App) promptKeep(label, current string) (string, error) {
	v, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
