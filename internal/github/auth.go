package github

import (
	"context"
	"fmt"

	"github.com/raphi011/ghv/internal/cmd"
)

// TokenFromGH asks the gh CLI for the token of the logged-in account.
func TokenFromGH(ctx context.Context) (string, error) {
	token, err := cmd.OutputContext(ctx, "gh", "auth", "token")
	if err != nil {
		return "", fmt.Errorf("gh auth token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("gh auth token: empty token")
	}
	return token, nil
}
