// Package github is a small read-only client for the GitHub REST API.
//
// Three calls are supported, each a single attempt with no retry:
//
//   - [Client.FetchProfile]: GET /users/{username}
//   - [Client.FetchRepositories]: GET {repos_url}?sort=stars&per_page=30
//   - [Client.FetchReadme]: GET /repos/{owner}/{repo}/readme as raw text
//
// # Failure Classification
//
// Profile and repository calls map HTTP failures onto a small set of errors:
//
//   - 404: [ErrNotFound]
//   - 403: [ErrRateLimited]
//   - any other non-2xx: [*StatusError]
//   - transport failures: [*TransportError]
//
// README lookups never fail loudly. Any non-2xx status or transport error
// reports the README as absent.
//
// # Authentication
//
// A static token is optional. When set (config, GHV_TOKEN/GITHUB_TOKEN, or
// `gh auth token` via [TokenFromGH]) it is sent as a bearer token on every
// call; without one the Authorization header is omitted.
package github
