package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/common"
)

// describeError renders err as a message for the terminal.
func describeError(err error) string {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		var b strings.Builder
		b.WriteString("Please fix the following:")
		for _, fe := range verrs {
			fmt.Fprintf(&b, "\n  %s: %s", fe.Field, fe.Message)
		}
		return b.String()
	}

	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "Session expired, please log in again."
	case errors.Is(err, client.ErrUnavailable):
		return "Server is unavailable, try again later."
	case errors.Is(err, common.ErrNoAPIKey):
		return "API key is not set. Use 'apikey' to set it."
	case errors.Is(err, common.ErrNoSession):
		return "login required"
	case errors.Is(err, common.ErrImmutableTemplate):
		return "Default templates cannot be edited or deleted."
	case errors.Is(err, common.ErrorNotFound):
		return "Not found."
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return "Error: " + apiErr.Detail
		}
		return fmt.Sprintf("Error: %d %s", apiErr.Status, apiErr.StatusText)
	}
	return "Error: " + err.Error()
}
