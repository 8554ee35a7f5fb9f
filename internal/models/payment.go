package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRecord - неизменяемая квитанция об оплате подписки.
type PaymentRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	Price         float64            `bson:"price" json:"price"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Plan          string             `bson:"plan" json:"plan"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}
