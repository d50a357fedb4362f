package carrito

import (
	"context"
	"sync"
	"time"
)

// Memoria is an in-memory Almacen. Used by unit tests and exercised the same
// way the Redis implementation is; TTLs are honored against the injected
// clock so freshness behavior is deterministic under test.
type Memoria struct {
	mu    sync.Mutex
	datos map[string]entradaMemoria
	ahora func() time.Time
}

type entradaMemoria struct {
	valor string
	vence time.Time // zero = no expiry
}

// NewMemoria creates an empty in-memory store. A nil clock defaults to
// time.Now.
func NewMemoria(ahora func() time.Time) *Memoria {
	if ahora == nil {
		ahora = time.Now
	}
	return &Memoria{datos: make(map[string]entradaMemoria), ahora: ahora}
}

func (m *Memoria) Get(_ context.Context, clave string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.datos[clave]
	if !ok || m.vencida(e) {
		delete(m.datos, clave)
		return "", ErrClaveInexistente
	}
	return e.valor, nil
}

func (m *Memoria) Set(_ context.Context, clave, valor string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datos[clave] = m.entrada(valor, ttl)
	return nil
}

func (m *Memoria) SetNX(_ context.Context, clave, valor string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.datos[clave]; ok && !m.vencida(e) {
		return false, nil
	}
	m.datos[clave] = m.entrada(valor, ttl)
	return true, nil
}

func (m *Memoria) Del(_ context.Context, claves ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range claves {
		delete(m.datos, c)
	}
	return nil
}

func (m *Memoria) entrada(valor string, ttl time.Duration) entradaMemoria {
	e := entradaMemoria{valor: valor}
	if ttl > 0 {
		e.vence = m.ahora().Add(ttl)
	}
	return e
}

func (m *Memoria) vencida(e entradaMemoria) bool {
	return !e.vence.IsZero() && m.ahora().After(e.vence)
}
