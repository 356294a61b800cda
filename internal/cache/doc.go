// Package cache provides an in-memory TTL cache for backend GET responses.
//
// Option lists (organizations, locations, chargers, connectors) are fetched
// every time a cascade level loads. With the cache enabled a console session
// reuses responses younger than the TTL; any successful save clears the whole
// store so edited entities are never served stale. Nothing is written to disk.
package cache
