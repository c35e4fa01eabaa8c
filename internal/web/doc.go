// Package web serves profiles over HTTP.
//
// The server runs the same pipeline as the CLI, one pipeline per request,
// with caches shared across requests. Each request waits for its README
// tasks before answering.
//
// # Routes
//
//   - GET /                    search form; ?u=name redirects to /u/name
//   - GET /u/:username         HTML page
//   - GET /api/users/:username JSON snapshot
//   - GET /healthz             cache counters and API rate limit
//
// Failed lookups map to 400 (invalid username), 404 (unknown user),
// 429 (rate limited) and 502 (anything else the API did).
package web
