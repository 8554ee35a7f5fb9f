package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// ListPayments возвращает квитанции пользователя, новые первыми.
func (s *Storage) ListPayments(ctx context.Context, email string) ([]*models.PaymentRecord, error) {
	const op = "storage.mongodb.ListPayments"

	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	cur, err := s.payments.Find(ctx, bson.D{{Key: "email", Value: email}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]*models.PaymentRecord, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
