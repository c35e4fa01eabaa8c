// Package tui is the interactive profile browser behind "ghv browse".
//
// The pipeline drives a [Sink] that forwards every call to the running
// bubbletea program as a message. The model never calls the pipeline from
// Update directly: searches, expands and overlay closes run as commands,
// because the pipeline holds its lock while it sends to the program.
package tui
