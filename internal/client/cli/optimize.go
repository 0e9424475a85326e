package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/services"
	"github.com/dmitrijs2005/promptmaster/internal/common"
)

// Optimize asks for a template, a model, a temperature and a prompt, then
// runs the optimization with the stored API key.
func (a *App) Optimize(ctx context.Context) error {
	if a.keyService.Get() == "" {
		return common.ErrNoAPIKey
	}

	if a.isLoggedIn() {
		if _, err := a.templateService.List(ctx, false); err == nil {
			for _, t := range a.templateService.Filter(services.AllCategories, "") {
				a.printTemplateLine(t)
			}
		}
	}

	var req models.OptimizeRequest

	idText, err := GetSimpleText(a.reader, "Template id", a.out)
	if err != nil {
		return err
	}
	if idText != "" {
		if req.TemplateID, err = parseID(idText); err != nil {
			return err
		}
	}

	defaultModel := ""
	if list, err := a.modelService.List(ctx, false); err == nil && len(list) > 0 {
		defaultModel = list[0].Name
		for _, m := range list {
			a.printf("  %s\n", m.Name)
		}
	}
	if req.Model, err = a.promptKeep("Model", defaultModel); err != nil {
		return err
	}

	tempText, err := a.promptKeep("Temperature (0-1)", strconv.FormatFloat(models.DefaultTemperature, 'f', -1, 64))
	if err != nil {
		return err
	}
	if req.Temperature, err = strconv.ParseFloat(tempText, 64); err != nil {
		return fmt.Errorf("invalid temperature %q", tempText)
	}

	if req.OriginalPrompt, err = GetMultiline(a.reader, "Prompt", a.out); err != nil {
		return err
	}

	res, err := a.optimizeService.Optimize(ctx, req)
	if err != nil {
		return err
	}

	a.printf("\nOptimized prompt:\n%s\n", res.OptimizedPrompt)
	if res.ImprovementAnalysis != "" {
		a.printf("\nWhat changed:\n%s\n", res.ImprovementAnalysis)
	}
	return nil
}
