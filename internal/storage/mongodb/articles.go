package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// CreateArticle вставляет статью и возвращает её идентификатор.
func (s *Storage) CreateArticle(ctx context.Context, article models.Article) (string, error) {
	const op = "storage.mongodb.CreateArticle"

	article.ID = primitive.NilObjectID
	res, err := s.articles.InsertOne(ctx, article)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}
	return oid.Hex(), nil
}

// ListArticlesByStatus возвращает статьи с заданным статусом.
func (s *Storage) ListArticlesByStatus(ctx context.Context, status string) ([]*models.Article, error) {
	const op = "storage.mongodb.ListArticlesByStatus"
	return s.findArticles(ctx, op, bson.D{{Key: "status", Value: status}})
}

// ListArticlesByAuthor возвращает все статьи автора.
func (s *Storage) ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	const op = "storage.mongodb.ListArticlesByAuthor"
	return s.findArticles(ctx, op, bson.D{{Key: "authorEmail", Value: email}})
}

func (s *Storage) findArticles(ctx context.Context, op string, filter bson.D) ([]*models.Article, error) {
	cur, err := s.articles.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]*models.Article, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ViewArticle увеличивает счётчик просмотров и возвращает обновлённую статью.
func (s *Storage) ViewArticle(ctx context.Context, id string) (*models.Article, error) {
	const op = "storage.mongodb.ViewArticle"

	oid, err := objectID(op, id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}}

	var article models.Article
	if err := s.articles.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&article); err != nil {
		return nil, notFoundOr(op, err)
	}
	return &article, nil
}

// SetArticleStatus безусловно перезаписывает статус статьи.
//
// Причина отказа записывается, если передана; иначе прежняя причина удаляется.
func (s *Storage) SetArticleStatus(ctx context.Context, id, status, reason string, now time.Time) error {
	const op = "storage.mongodb.SetArticleStatus"

	oid, err := objectID(op, id)
	if err != nil {
		return err
	}
	set := bson.D{{Key: "status", Value: status}, {Key: "updatedAt", Value: now}}
	update := bson.D{}
	switch {
	case status == models.StatusRejected && reason != "":
		set = append(set, bson.E{Key: "declineReason", Value: reason})
	default:
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "declineReason", Value: ""}}})
	}
	update = append(update, bson.E{Key: "$set", Value: set})

	res, err := s.articles.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

// UpdateArticle применяет присутствующие поля содержимого.
func (s *Storage) UpdateArticle(ctx context.Context, id string, edit models.ArticleEdit, now time.Time) (*models.Article, error) {
	const op = "storage.mongodb.UpdateArticle"

	oid, err := objectID(op, id)
	if err != nil {
		return nil, err
	}
	set := bson.D{{Key: "updatedAt", Value: now}}
	if edit.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *edit.Title})
	}
	if edit.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *edit.Description})
	}
	if edit.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *edit.Image})
	}
	if edit.Publisher != nil {
		set = append(set, bson.E{Key: "publisher", Value: *edit.Publisher})
	}
	if edit.Tags != nil {
		set = append(set, bson.E{Key: "tags", Value: *edit.Tags})
	}
	if edit.IsPremium != nil {
		set = append(set, bson.E{Key: "isPremium", Value: *edit.IsPremium})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article models.Article
	err = s.articles.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&article)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return &article, nil
}

// DeleteArticle удаляет статью по идентификатору.
func (s *Storage) DeleteArticle(ctx context.Context, id string) error {
	const op = "storage.mongodb.DeleteArticle"

	oid, err := objectID(op, id)
	if err != nil {
		return err
	}
	res, err := s.articles.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}
