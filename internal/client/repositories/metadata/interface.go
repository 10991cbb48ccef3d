// Package metadata implements the client's durable key/value cache. The
// session layer stores the access token and the last-known user profile here
// so they survive restarts.
package metadata

import "context"

type Repository interface {
	// Get returns the value for key, or common.ErrorNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
