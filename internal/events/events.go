// Package events описывает доменные события, которые сервисы публикуют после изменений.
package events

import (
	"context"
	"time"
)

// Ключи маршрутизации.
const (
	RouteArticleStatus   = "article.status"
	RoutePaymentRecorded = "payment.recorded"
)

// ArticleStatusChanged публикуется при каждом переводе статьи в новый статус.
type ArticleStatusChanged struct {
	ArticleID string    `json:"articleId"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

// PaymentRecorded публикуется после зафиксированной выдачи премиума.
type PaymentRecorded struct {
	Email         string    `json:"email"`
	Plan          string    `json:"plan"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	ExpiresAt     time.Time `json:"expiresAt"`
	At            time.Time `json:"at"`
}

// Publisher отправляет события во внешний брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Noop - публикатор, который ничего не отправляет. Используется, когда брокер не настроен.
type Noop struct{}

// Publish ничего не делает.
func (Noop) Publish(context.Context, string, any) error { return nil }
