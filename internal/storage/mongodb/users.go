package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// ListUsers возвращает всех пользователей в порядке хранилища.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.mongodb.ListUsers"

	cur, err := s.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]*models.User, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.mongodb.GetUserByEmail"

	var user models.User
	if err := s.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user); err != nil {
		return nil, notFoundOr(op, err)
	}
	return &user, nil
}

// UpsertOnLogin атомарно создаёт пользователя или обновляет lastLogin существующего.
//
// Возвращает запись до обновления (с новым lastLogin) и false, если пользователь уже был,
// либо созданную запись и true.
func (s *Storage) UpsertOnLogin(ctx context.Context, payload models.LoginPayload, now time.Time) (*models.User, bool, error) {
	const op = "storage.mongodb.UpsertOnLogin"

	filter := bson.D{{Key: "email", Value: payload.Email}}
	onInsert := bson.D{
		{Key: "role", Value: models.RoleUser},
		{Key: "isPremium", Value: false},
		{Key: "createdAt", Value: now},
	}
	if payload.Name != "" {
		onInsert = append(onInsert, bson.E{Key: "name", Value: payload.Name})
	}
	if payload.Photo != "" {
		onInsert = append(onInsert, bson.E{Key: "photo", Value: payload.Photo})
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "lastLogin", Value: now}}},
		{Key: "$setOnInsert", Value: onInsert},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)

	var prior models.User
	err := s.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&prior)
	switch {
	case err == nil:
		prior.LastLogin = now
		return &prior, false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		created, err := s.GetUserByEmail(ctx, payload.Email)
		if err != nil {
			return nil, true, fmt.Errorf("%s: %w", op, err)
		}
		return created, true, nil
	default:
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
}

// UpdateProfile применяет присутствующие поля профиля и всегда обновляет updatedAt.
func (s *Storage) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate, now time.Time) (*models.User, error) {
	const op = "storage.mongodb.UpdateProfile"

	set := bson.D{{Key: "updatedAt", Value: now}}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *upd.Bio})
	}
	if upd.Photo != nil {
		set = append(set, bson.E{Key: "photo", Value: *upd.Photo})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.D{{Key: "email", Value: email}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&user)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return &user, nil
}

// GrantPremium в одной транзакции отмечает пользователя премиумом и добавляет квитанцию.
//
// Если пользователь не найден, транзакция отменяется и квитанция не пишется.
func (s *Storage) GrantPremium(ctx context.Context, email, plan string, takenAt, expiresAt time.Time, record models.PaymentRecord) error {
	const op = "storage.mongodb.GrantPremium"

	sess, err := s.Client.StartSession()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "isPremium", Value: true},
			{Key: "premiumTakenAt", Value: takenAt},
			{Key: "premiumExpiresAt", Value: expiresAt},
			{Key: "currentPlan", Value: plan},
			{Key: "updatedAt", Value: takenAt},
		}}}
		res, err := s.users.UpdateOne(sc, bson.D{{Key: "email", Value: email}}, update)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, apperr.ErrNotFound
		}
		if _, err := s.payments.InsertOne(sc, record); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RevokePremium снимает премиум-доступ.
func (s *Storage) RevokePremium(ctx context.Context, email string, now time.Time) error {
	const op = "storage.mongodb.RevokePremium"

	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "isPremium", Value: false}, {Key: "updatedAt", Value: now}}},
		{Key: "$unset", Value: bson.D{{Key: "currentPlan", Value: ""}}},
	}
	res, err := s.users.UpdateOne(ctx, bson.D{{Key: "email", Value: email}}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

// DeleteUser удаляет пользователя по email.
func (s *Storage) DeleteUser(ctx context.Context, email string) error {
	const op = "storage.mongodb.DeleteUser"

	res, err := s.users.DeleteOne(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}
