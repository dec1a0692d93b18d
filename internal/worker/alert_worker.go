package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts.
// Notifies the shop owner by email when a sale drains a product's stock.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Pessima-byte/Estommy-sub002/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// LowStockAlertPayload is the job envelope sent to QueueAlerts.
type LowStockAlertPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Stock     int    `json:"stock"`
	Status    string `json:"status"`
}

// AlertWorker turns low-stock jobs into emails to the configured address.
type AlertWorker struct {
	mailer  *infra.Mailer
	toEmail string
}

func NewAlertWorker(mailer *infra.Mailer, toEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, toEmail: toEmail}
}

func (w *AlertWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if w.toEmail == "" {
		log.Warn().Str("sku", payload.SKU).Msg("alert_worker: no alert email configured — skipping")
		return
	}

	subject := fmt.Sprintf("Stock alert: %s is %s", payload.Name, payload.Status)
	body := fmt.Sprintf(
		"Product %s (SKU %s) is down to %d units (%s).\n\nRestock it from the products page.",
		payload.Name, payload.SKU, payload.Stock, payload.Status,
	)

	if err := w.mailer.SendAlert(w.toEmail, subject, body); err != nil {
		log.Error().Err(err).Str("sku", payload.SKU).Msg("alert_worker: failed to send alert email")
		SendToDLQ(ctx, rdb, QueueAlerts, "low_stock_alert", raw, err.Error(), 1)
		return
	}
	log.Info().Str("sku", payload.SKU).Int("stock", payload.Stock).Msg("alert_worker: low stock alert sent")
}
