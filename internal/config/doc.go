// Package config handles loading and validation of ghv configuration.
//
// Configuration is read from ~/.config/ghv/config.toml (or the file named by
// GHV_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (--token, --api-url), applied by the caller
//   - GHV_TOKEN, then GITHUB_TOKEN: API token
//   - GHV_API_URL: API base URL
//   - GHV_CACHE_TTL: cache time-to-live (Go duration, e.g. "90s")
//   - Config file settings
//   - Default values
//
// A .env file in the working directory is loaded into the environment
// first, so the variables above can live there. Variables already set in
// the environment win over .env.
//
// # Token
//
// A token is optional. Without one, calls are anonymous and subject to the
// lower unauthenticated rate limit. With api.gh_auth = true and no token
// configured, the token of the logged-in gh CLI account is used.
package config
