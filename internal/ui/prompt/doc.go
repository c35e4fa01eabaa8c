// Package prompt provides simple interactive prompts on stderr.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input
package prompt
