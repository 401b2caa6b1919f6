package worker

// email_worker.go
// Processes receipt-delivery jobs from QueueEmail: renders the comprobante
// PDF, emails it, and moves the job to the DLQ after the retries run out.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"credicaja/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const maxSendAttempts = 3

// ComprobanteEmailPayload carries everything the worker needs to render and
// send the receipt, so processing never touches the database.
type ComprobanteEmailPayload struct {
	ToEmail        string          `json:"to_email"`
	Serie          string          `json:"serie"`
	Numero         string          `json:"numero"`
	ClienteNombre  string          `json:"cliente_nombre"`
	Documento      string          `json:"documento"`
	Concepto       string          `json:"concepto"`
	MedioPago      string          `json:"medio_pago"`
	MontoCobrado   decimal.Decimal `json:"monto_cobrado"`
	RedondeoAjuste decimal.Decimal `json:"redondeo_ajuste"`
	NuevoSaldo     decimal.Decimal `json:"nuevo_saldo"`
	EsPagoParcial  bool            `json:"es_pago_parcial"`
	Fecha          string          `json:"fecha"`
}

// EmailWorker sends PDF receipts to customer emails via SMTP.
type EmailWorker struct {
	mailer      *infra.Mailer
	rdb         *redis.Client
	storagePath string
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client, storagePath string) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb, storagePath: storagePath}
}

// Process renders the PDF and sends the email, retrying the send with linear
// backoff. Exhausted jobs go to the DLQ for manual inspection.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	pdfPath, err := infra.GenerateComprobantePDF(infra.ComprobantePDFData{
		Serie:          payload.Serie,
		Numero:         payload.Numero,
		ClienteNombre:  payload.ClienteNombre,
		Documento:      payload.Documento,
		Concepto:       payload.Concepto,
		MedioPago:      payload.MedioPago,
		MontoCobrado:   payload.MontoCobrado,
		RedondeoAjuste: payload.RedondeoAjuste,
		NuevoSaldo:     payload.NuevoSaldo,
		EsPagoParcial:  payload.EsPagoParcial,
		Fecha:          payload.Fecha,
	}, w.storagePath)
	if err != nil {
		// send without attachment rather than lose the receipt entirely
		log.Error().Err(err).Str("numero", payload.Numero).Msg("email_worker: PDF generation failed")
		pdfPath = ""
	}

	subject := fmt.Sprintf("Comprobante de pago %s-%s", payload.Serie, payload.Numero)
	body := buildEmailBody(payload)

	var sendErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		sendErr = w.mailer.SendComprobante(payload.ToEmail, subject, body, pdfPath)
		if sendErr == nil {
			log.Info().
				Str("to", payload.ToEmail).
				Str("comprobante", payload.Serie+"-"+payload.Numero).
				Msg("email_worker: comprobante sent successfully")
			return
		}
		log.Warn().
			Err(sendErr).
			Int("attempt", attempt).
			Str("to", payload.ToEmail).
			Msg("email_worker: send failed")
		if attempt < maxSendAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	SendToDLQ(ctx, w.rdb, QueueEmail, JobTypeComprobanteEmail, raw, sendErr.Error(), maxSendAttempts)
}

func buildEmailBody(p ComprobanteEmailPayload) string {
	body := fmt.Sprintf(
		"Estimado(a) %s,\n\nAdjuntamos su comprobante de pago %s-%s.\n\n%s\nMedio de pago: %s\nTotal pagado: S/ %s\nSaldo pendiente: S/ %s\n",
		p.ClienteNombre, p.Serie, p.Numero, p.Concepto, p.MedioPago,
		p.MontoCobrado.StringFixed(2), p.NuevoSaldo.StringFixed(2),
	)
	if p.EsPagoParcial {
		body += "\nEste es un pago parcial. La cuota mantiene saldo pendiente.\n"
	}
	body += "\nGracias por su pago.\nCrediCaja"
	return body
}
