package cli

import (
	"context"
	"strings"
)

// Reset wipes the persisted session, the API key and the key material after
// confirmation.
func (a *App) Reset(ctx context.Context) error {
	contents, err := a.store.Contents(ctx)
	if err != nil {
		return err
	}
	if contents.Empty() {
		a.printf("Nothing is stored in %s\n", a.config.DataDir)
	} else {
		a.printf("Stored in %s:\n", a.config.DataDir)
		if contents.Session {
			a.printf("  saved session\n")
		}
		if len(contents.Secrets) > 0 {
			a.printf("  secrets: %s\n", strings.Join(contents.Secrets, ", "))
		}
		if len(contents.Metadata) > 0 {
			a.printf("  metadata: %s\n", strings.Join(contents.Metadata, ", "))
		}
	}

	ok, err := GetConfirmation(a.reader, "This removes the saved session and API key from this machine. Continue?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled\n")
		return nil
	}

	if err := a.store.Wipe(ctx); err != nil {
		return err
	}
	a.keyStore.Clear()
	a.authStore.Reset()
	a.models.Invalidate()

	a.printf("Local data removed\n")
	return nil
}
