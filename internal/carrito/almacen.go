package carrito

import (
	"context"
	"errors"
	"time"
)

// ErrClaveInexistente is returned by Almacen.Get for a missing key.
var ErrClaveInexistente = errors.New("clave inexistente")

// Almacen is the key-value persistence behind carts and checkout sessions.
// Production uses Redis (internal/infra); tests inject the in-memory fake.
type Almacen interface {
	Get(ctx context.Context, clave string) (string, error)
	Set(ctx context.Context, clave, valor string, ttl time.Duration) error
	// SetNX sets the key only when absent; reports whether it was set.
	SetNX(ctx context.Context, clave, valor string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, claves ...string) error
}
