// Package paymentprovider - клиент платёжного провайдера Stripe.
//
// Клиент создаёт платёжные намерения (PaymentIntent) и при необходимости
// проверяет, что намерение действительно оплачено.
package paymentprovider

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Intents - часть API Stripe, которой пользуется клиент.
type Intents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Client обращается к Stripe от имени сервиса.
type Client struct {
	intents  Intents
	currency string
}

// NewClient создаёт новый клиент Stripe с секретным ключом.
func NewClient(secretKey, currency string) *Client {
	sc := client.New(secretKey, nil)
	return NewWithIntents(sc.PaymentIntents, currency)
}

// NewWithIntents создаёт клиент поверх произвольной реализации Intents.
func NewWithIntents(intents Intents, currency string) *Client {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &Client{intents: intents, currency: currency}
}

// CreatePaymentIntent создаёт карточное платёжное намерение на сумму amount
// в минимальных единицах валюты и возвращает client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResponse, error) {
	const op = "paymentprovider.CreatePaymentIntent"

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(c.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := c.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &CreateIntentResponse{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

// GetPaymentIntent возвращает текущее состояние платёжного намерения.
func (c *Client) GetPaymentIntent(ctx context.Context, id string) (*IntentStatus, error) {
	const op = "paymentprovider.GetPaymentIntent"

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := c.intents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &IntentStatus{
		ID:        pi.ID,
		Amount:    pi.Amount,
		Succeeded: pi.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}
