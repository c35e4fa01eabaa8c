// Package cache provides the in-memory stores for fetched GitHub data.
//
// Two stores exist for the lifetime of the process:
//
//   - profiles, keyed by username
//   - repository lists, keyed by the profile's repos URL (one entry per
//     list, not per repository)
//
// # Freshness
//
// Every entry carries the time it was stored. [Store.Get] only returns a value
// written less than the store's TTL ago (default [DefaultTTL], five minutes).
// A stale entry is left in place and reads as absent; the next successful
// fetch overwrites it with [Store.Put].
//
// There is no eviction and no size bound. Entries are replaced wholesale,
// never mutated, so a reader can never observe a partially written value.
//
// # Clock
//
// The store reads time through an injectable clock ([WithClock]) so tests can
// step past the TTL without sleeping.
package cache
