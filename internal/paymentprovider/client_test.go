package paymentprovider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type IntentsMock struct {
	mock.Mock
}

func (m *IntentsMock) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	args := m.Called(params)
	pi, _ := args.Get(0).(*stripe.PaymentIntent)
	return pi, args.Error(1)
}

func (m *IntentsMock) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	args := m.Called(id, params)
	pi, _ := args.Get(0).(*stripe.PaymentIntent)
	return pi, args.Error(1)
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	intents := new(IntentsMock)
	c := NewWithIntents(intents, "")

	intents.On("New", mock.MatchedBy(func(p *stripe.PaymentIntentParams) bool {
		return *p.Amount == 1999 &&
			*p.Currency == "usd" &&
			len(p.PaymentMethodTypes) == 1 && *p.PaymentMethodTypes[0] == "card" &&
			p.IdempotencyKey != nil && *p.IdempotencyKey != ""
	})).Return(&stripe.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 1999, Currency: stripe.CurrencyUSD}, nil).Once()

	resp, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{Amount: 1999})
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)
	assert.Equal(t, int64(1999), resp.Amount)
	intents.AssertExpectations(t)
}

func TestClient_CreatePaymentIntent_ProviderError(t *testing.T) {
	intents := new(IntentsMock)
	c := NewWithIntents(intents, "eur")

	intents.On("New", mock.Anything).Return(nil, errors.New("card declined")).Once()

	resp, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{Amount: 500})
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_GetPaymentIntent(t *testing.T) {
	tests := []struct {
		name          string
		status        stripe.PaymentIntentStatus
		wantSucceeded bool
	}{
		{name: "succeeded", status: stripe.PaymentIntentStatusSucceeded, wantSucceeded: true},
		{name: "requires payment method", status: stripe.PaymentIntentStatusRequiresPaymentMethod, wantSucceeded: false},
		{name: "processing", status: stripe.PaymentIntentStatusProcessing, wantSucceeded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intents := new(IntentsMock)
			c := NewWithIntents(intents, "usd")
			intents.On("Get", "pi_1", mock.Anything).
				Return(&stripe.PaymentIntent{ID: "pi_1", Amount: 999, Status: tt.status}, nil).Once()

			st, err := c.GetPaymentIntent(context.Background(), "pi_1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSucceeded, st.Succeeded)
			assert.Equal(t, int64(999), st.Amount)
		})
	}
}
