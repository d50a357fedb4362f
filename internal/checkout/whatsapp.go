package checkout

import (
	"errors"
	"fmt"
	"net/url"

	"burgershop/internal/model"
)

// Destinos resolves where the customer is sent after confirming: a pre-filled
// WhatsApp conversation for cash and bank transfer, the stored gateway
// redirect for Mercado Pago.
type Destinos struct {
	// WhatsAppNumero in international format without "+", e.g. 5491122334455.
	WhatsAppNumero string
}

var ErrSinLinkPago = errors.New("el pedido no tiene link de pago")

// URL returns the external destination for a pending order.
func (d Destinos) URL(p *Pendiente) (string, error) {
	switch p.Pedido.MetodoDePago {
	case model.MetodoMercadoPago:
		if p.MPLink == "" {
			return "", ErrSinLinkPago
		}
		return p.MPLink, nil
	case model.MetodoTransferencia:
		msg := fmt.Sprintf(
			"¡Hola! Hice el pedido #%d y quiero pagarlo por transferencia. ¿Me pasan los datos de la cuenta?",
			p.Numero,
		)
		return d.linkWhatsApp(msg), nil
	default: // efectivo
		msg := fmt.Sprintf(
			"¡Hola! Hice el pedido #%d y lo pago en efectivo al recibirlo.",
			p.Numero,
		)
		return d.linkWhatsApp(msg), nil
	}
}

func (d Destinos) linkWhatsApp(mensaje string) string {
	return "https://wa.me/" + d.WhatsAppNumero + "?text=" + url.QueryEscape(mensaje)
}
