package worker

// eventos.go — real-time order/payment events for the back-office UI.
// Published to a Redis pub/sub channel; delivery is fire-and-forget per
// event with no ordering guarantee beyond arrival order and no
// de-duplication.

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const CanalEventos = "eventos:pedidos"

const (
	EventoNuevoPedido   = "nuevoPedido"
	EventoPagoAprobado  = "pagoAprobado"
	EventoPagoRechazado = "pagoRechazado"
	EventoPagoExpirado  = "pagoExpirado"
)

// Evento is the envelope pushed to the admin channel.
type Evento struct {
	Tipo     string `json:"tipo"`
	PedidoID string `json:"pedido_id"`
	Numero   int64  `json:"numero"`
}

// PublicarEvento pushes the event; failures are logged, never propagated —
// a missed notification must not fail the order mutation that caused it.
func PublicarEvento(ctx context.Context, rdb *redis.Client, ev Evento) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("tipo", ev.Tipo).Msg("eventos: marshal")
		return
	}
	if err := rdb.Publish(ctx, CanalEventos, data).Err(); err != nil {
		log.Error().Err(err).Str("tipo", ev.Tipo).Msg("eventos: publish")
	}
}
