// Package localstore persists small client-local values (the session
// credential) across runs in a sqlite database.
package localstore

import "context"

// KeyToken is the single fixed key under which the session credential is
// stored. Absence means logged-out.
const KeyToken = "token"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
