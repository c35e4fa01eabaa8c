// Package cmd runs external commands and surfaces their stderr in errors.
//
// ghv shells out to the gh CLI to reuse an existing login rather than
// asking for a token of its own:
//
//	out, err := cmd.OutputContext(ctx, "gh", "auth", "token")
//	if err != nil {
//	    // err carries gh's stderr, e.g. "not logged in"
//	}
package cmd
