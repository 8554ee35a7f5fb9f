// Package mongodb реализует документное хранилище на основе MongoDB
// для пользователей, статей, издателей и платёжных квитанций.
//
// Все методы оборачивают ошибки драйвера через op, а отсутствие документа
// переводят в apperr.ErrNotFound.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/magabrotheeeer/daily-bulletin/internal/config"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
)

// Storage инкапсулирует клиента MongoDB и именованные коллекции.
type Storage struct {
	Client     *mongo.Client
	DB         *mongo.Database
	users      *mongo.Collection
	articles   *mongo.Collection
	publishers *mongo.Collection
	payments   *mongo.Collection
}

// New подключается к MongoDB и проверяет соединение.
func New(ctx context.Context, cfg config.Mongo) (*Storage, error) {
	const op = "storage.mongodb.New"

	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient собирает Storage поверх уже подключённого клиента.
func NewWithClient(client *mongo.Client, cfg config.Mongo) *Storage {
	db := client.Database(cfg.Database)
	return &Storage{
		Client:     client,
		DB:         db,
		users:      db.Collection(orDefault(cfg.UsersCollection, "users")),
		articles:   db.Collection(orDefault(cfg.ArticlesCollection, "article")),
		publishers: db.Collection(orDefault(cfg.PublishersCollection, "publisher")),
		payments:   db.Collection(orDefault(cfg.PaymentsCollection, "payments")),
	}
}

// Ping проверяет доступность хранилища.
func (s *Storage) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Close закрывает соединение с хранилищем.
func (s *Storage) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func objectID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w: malformed id %q", op, apperr.ErrInvalidInput, id)
	}
	return oid, nil
}

func notFoundOr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
