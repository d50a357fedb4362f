package infra

import (
	"context"
	"errors"
	"time"

	"burgershop/internal/carrito"

	"github.com/redis/go-redis/v9"
)

// AlmacenRedis backs carrito.Almacen with Redis. Carts, pending-payment
// sessions and checkout locks all live here in production.
type AlmacenRedis struct {
	rdb *redis.Client
}

func NewAlmacenRedis(rdb *redis.Client) *AlmacenRedis {
	return &AlmacenRedis{rdb: rdb}
}

func (a *AlmacenRedis) Get(ctx context.Context, clave string) (string, error) {
	valor, err := a.rdb.Get(ctx, clave).Result()
	if errors.Is(err, redis.Nil) {
		return "", carrito.ErrClaveInexistente
	}
	return valor, err
}

func (a *AlmacenRedis) Set(ctx context.Context, clave, valor string, ttl time.Duration) error {
	return a.rdb.Set(ctx, clave, valor, ttl).Err()
}

func (a *AlmacenRedis) SetNX(ctx context.Context, clave, valor string, ttl time.Duration) (bool, error) {
	return a.rdb.SetNX(ctx, clave, valor, ttl).Result()
}

func (a *AlmacenRedis) Del(ctx context.Context, claves ...string) error {
	return a.rdb.Del(ctx, claves...).Err()
}

var _ carrito.Almacen = (*AlmacenRedis)(nil)
