package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// CreatePublisher вставляет издателя и возвращает его идентификатор.
func (s *Storage) CreatePublisher(ctx context.Context, p models.Publisher) (string, error) {
	const op = "storage.mongodb.CreatePublisher"

	p.ID = primitive.NilObjectID
	res, err := s.publishers.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}
	return oid.Hex(), nil
}

// ListPublishers возвращает весь справочник издателей.
func (s *Storage) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	const op = "storage.mongodb.ListPublishers"

	cur, err := s.publishers.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]*models.Publisher, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPublisher возвращает издателя по идентификатору.
func (s *Storage) GetPublisher(ctx context.Context, id string) (*models.Publisher, error) {
	const op = "storage.mongodb.GetPublisher"

	oid, err := objectID(op, id)
	if err != nil {
		return nil, err
	}
	var p models.Publisher
	if err := s.publishers.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&p); err != nil {
		return nil, notFoundOr(op, err)
	}
	return &p, nil
}

// UpdatePublisher применяет присутствующие поля и возвращает обновлённую запись.
func (s *Storage) UpdatePublisher(ctx context.Context, id string, upd models.PublisherUpdate) (*models.Publisher, error) {
	const op = "storage.mongodb.UpdatePublisher"

	oid, err := objectID(op, id)
	if err != nil {
		return nil, err
	}
	set := bson.D{}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *upd.Image})
	}
	if len(set) == 0 {
		return s.GetPublisher(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Publisher
	err = s.publishers.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&p)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return &p, nil
}

// DeletePublisher удаляет издателя.
func (s *Storage) DeletePublisher(ctx context.Context, id string) error {
	const op = "storage.mongodb.DeletePublisher"

	oid, err := objectID(op, id)
	if err != nil {
		return err
	}
	res, err := s.publishers.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}
