package worker

// notificacion_worker.go
// Processes new-order notification jobs from QueueNotificacion.
// Renders the kitchen ticket PDF and mails it to the shop inbox so the
// staff sees every confirmed order even with the back-office closed.

import (
	"context"
	"encoding/json"
	"fmt"

	"burgershop/internal/infra"
	"burgershop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificacionPayload is the job envelope sent to QueueNotificacion.
type NotificacionPayload struct {
	PedidoID string `json:"pedido_id"`
}

// NotificacionWorker loads the order, builds the ticket and sends it out.
type NotificacionWorker struct {
	pedidoRepo  repository.PedidoRepository
	mailer      *infra.Mailer
	notificarA  string
	storagePath string
}

func NewNotificacionWorker(pedidoRepo repository.PedidoRepository, mailer *infra.Mailer, notificarA, storagePath string) *NotificacionWorker {
	return &NotificacionWorker{
		pedidoRepo:  pedidoRepo,
		mailer:      mailer,
		notificarA:  notificarA,
		storagePath: storagePath,
	}
}

// Process handles one notification job. Errors are returned so the pool
// can move the job to the DLQ.
func (w *NotificacionWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload NotificacionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("notificacion_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.PedidoID)
	if err != nil {
		return fmt.Errorf("notificacion_worker: invalid pedido_id %q: %w", payload.PedidoID, err)
	}
	if w.notificarA == "" {
		log.Warn().Msg("notificacion_worker: no destination address configured, skipping")
		return nil
	}

	pedido, err := w.pedidoRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("notificacion_worker: load pedido: %w", err)
	}

	pdfPath, err := infra.GeneratePedidoPDF(pedido, w.storagePath)
	if err != nil {
		// The ticket is nice to have; the mail still carries the essentials.
		log.Error().Err(err).Str("pedido_id", payload.PedidoID).Msg("notificacion_worker: pdf generation failed")
		pdfPath = ""
	}

	subject := fmt.Sprintf("Nuevo pedido #%d", pedido.Numero)
	body := fmt.Sprintf("Pedido #%d (%s) por $%s. Telefono: %s.",
		pedido.Numero, pedido.MetodoDePago, pedido.Total.StringFixed(2), pedido.ClienteTelefono)
	if err := w.mailer.SendAviso(w.notificarA, subject, body, pdfPath); err != nil {
		return fmt.Errorf("notificacion_worker: send mail: %w", err)
	}

	log.Info().Int64("numero", pedido.Numero).Msg("notificacion_worker: aviso enviado")
	return nil
}
