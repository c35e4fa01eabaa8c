// Package format turns remote GitHub data into display-safe strings.
//
// # Counts
//
// [Count] abbreviates follower, star and fork counts the way the GitHub web UI
// does: values of a thousand or more get a one-decimal "K" suffix, values of a
// million or more a one-decimal "M" suffix.
//
// # Escaping
//
// Every string that comes from the API (names, descriptions, bios, README text)
// is untrusted. Two escapers exist, one per kind of display surface:
//
//   - [EscapeForDisplay]: maps & < > " ' to HTML entities for the web sink
//   - [SanitizeTerminal]: strips ANSI escape sequences and control characters
//     for the terminal sinks, so remote text cannot move the cursor, recolor
//     the screen or set the window title
//
// # README Previews
//
// [Preview] cuts a README to its first lines and reports whether anything was
// left out, which drives the "show more" affordance.
package format
