// Package cache stores fetched catalog payloads on disk with TTL expiration.
//
// Entries live as JSON files under ~/.wattfocus/cache/ keyed by a SHA-256
// digest of the source location, so repeated runs against the same catalog
// URL skip the network until the entry expires. TTL comes from the config
// file, WATTFOCUS_CACHE_TTL_SECONDS or the --cache-ttl flag.
package cache
