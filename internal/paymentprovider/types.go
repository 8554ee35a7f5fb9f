package paymentprovider

// CreateIntentRequest - запрос на создание платёжного намерения.
type CreateIntentRequest struct {
	Amount int64 // сумма в минимальных единицах валюты (центах)
}

// CreateIntentResponse - ответ Stripe при создании намерения.
type CreateIntentResponse struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// IntentStatus - состояние намерения, нужное для проверки оплаты.
type IntentStatus struct {
	ID        string
	Amount    int64
	Succeeded bool
}
