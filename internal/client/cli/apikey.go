package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promptmaster/internal/common"
)

// APIKey manages the stored LLM API key.
//
//	apikey        prompt for a key; empty input clears it
//	apikey clear  remove the stored key
//	apikey show   print the key masked
func (a *App) APIKey(ctx context.Context, args []string) error {
	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "":
		key, err := GetSecret(a.reader, "Enter API key (empty to clear)", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(key)

		if err := a.keyService.Set(ctx, string(key)); err != nil {
			return err
		}
		if a.keyService.Get() == "" {
			a.printf("API key cleared\n")
		} else {
			a.printf("API key saved\n")
		}

	case "clear":
		if err := a.keyService.Clear(ctx); err != nil {
			return err
		}
		a.printf("API key cleared\n")

	case "show":
		key := a.keyService.Get()
		if key == "" {
			a.printf("API key is not set\n")
			return nil
		}
		a.printf("API key: %s\n", common.MaskSecret(key))

	default:
		return fmt.Errorf("unknown apikey command %q, use: apikey [clear|show]", sub)
	}
	return nil
}
