package worker

// expiracion_cron.go
// Background goroutine that expires mercadopago orders whose payment never
// arrived. A pedido created more than the configured window ago and still
// in estado_pago='pendiente' is marked 'expirado' and the back-office is
// notified so the kitchen does not prepare it.

import (
	"context"
	"time"

	"burgershop/internal/model"
	"burgershop/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	expiracionTickInterval = time.Minute
	expiracionBatchSize    = 20
)

// ExpiracionCronConfig holds all dependencies for the expiry goroutine.
type ExpiracionCronConfig struct {
	PedidoRepo repository.PedidoRepository
	RDB        *redis.Client
	// Ventana is how long a mercadopago payment may stay pending.
	Ventana time.Duration
}

// StartExpiracionCron launches a goroutine that ticks every minute and
// expires stale pending payments. It respects the context for graceful
// shutdown.
func StartExpiracionCron(ctx context.Context, cfg ExpiracionCronConfig) {
	go func() {
		ticker := time.NewTicker(expiracionTickInterval)
		defer ticker.Stop()

		log.Info().Dur("ventana", cfg.Ventana).Msg("expiracion_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("expiracion_cron: shutting down")
				return
			case <-ticker.C:
				processExpiraciones(ctx, cfg)
			}
		}
	}()
}

func processExpiraciones(ctx context.Context, cfg ExpiracionCronConfig) {
	cutoff := time.Now().Add(-cfg.Ventana)
	pedidos, err := cfg.PedidoRepo.ListPagosVencidos(ctx, cutoff, expiracionBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("expiracion_cron: failed to query pending payments")
		return
	}
	if len(pedidos) == 0 {
		return
	}

	log.Info().Int("count", len(pedidos)).Msg("expiracion_cron: expiring stale payments")

	for i := range pedidos {
		p := &pedidos[i]
		if err := cfg.PedidoRepo.UpdateEstadoPago(ctx, p.ID, model.PagoExpirado); err != nil {
			log.Error().Err(err).Str("pedido_id", p.ID.String()).Msg("expiracion_cron: update failed")
			continue
		}
		PublicarEvento(ctx, cfg.RDB, Evento{
			Tipo:     EventoPagoExpirado,
			PedidoID: p.ID.String(),
			Numero:   p.Numero,
		})
		log.Warn().
			Int64("numero", p.Numero).
			Time("creado", p.CreatedAt).
			Msg("expiracion_cron: pago expirado")
	}
}
