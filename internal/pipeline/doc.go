// Package pipeline sequences a profile search: validate the username,
// resolve the profile (cache or network), resolve its repository list,
// then stream README previews into the rendered repository cards.
//
// Every search starts a new generation. Results that belong to an older
// generation are dropped before they reach the [Sink], so a slow README
// from a previous search never lands on the current page.
//
// # Sinks
//
// A [Sink] is the presentation surface. ghv has three: the static terminal
// renderer, the interactive TUI and the web server. [Recorder] keeps every
// call in memory and is used for JSON/YAML output and in tests.
//
// Sink calls are serialized; a sink never sees two calls at once.
package pipeline
