package saved

import "context"

// =============================================================================
// KV - The persistence collaborator
// =============================================================================

// KV is a string key-value store. The repository only ever touches one
// key, so any backend with get/set semantics works.
//
// IMPLEMENTATIONS:
//   - store/memory: In-memory map for tests and dev
//   - store/sqlite: Single-table SQLite database
//   - store/redis:  Redis via go-redis
type KV interface {
	// Get returns the value and true, or "" and false when the key is absent.
	// err is reserved for backend failures; absence is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
