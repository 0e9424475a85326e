package cli

import "context"

// Models lists the LLMs the server offers.
func (a *App) Models(ctx context.Context) error {
	list, err := a.modelService.List(ctx, false)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No models available\n")
		return nil
	}

	for _, m := range list {
		a.printf("  %-28s %s\n", m.Name, m.Label())
		if m.Description != "" {
			a.printf("  %-28s %s\n", "", m.Description)
		}
	}
	return nil
}
