package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/daily-bulletin/internal/config"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// setupStorage поднимает MongoDB с replica set (нужен для транзакций).
func setupStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7", tcmongo.WithReplicaSet("rs0"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetDirect(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	s := NewWithClient(client, config.Mongo{Database: "bulletin_test"})
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	require.NoError(t, err)
	// Коллекции создаются заранее: внутри транзакции создавать их нельзя на старых серверах.
	require.NoError(t, s.DB.CreateCollection(ctx, "payments"))
	return s
}

func TestStorage_UpsertOnLogin(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	first := time.Now().UTC().Truncate(time.Millisecond)
	user, inserted, err := s.UpsertOnLogin(ctx, models.LoginPayload{Email: "reader@bulletin.com", Name: "Reader"}, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "reader@bulletin.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "Reader", user.Name)
	assert.True(t, first.Equal(user.CreatedAt))

	second := first.Add(time.Hour)
	user, inserted, err = s.UpsertOnLogin(ctx, models.LoginPayload{Email: "reader@bulletin.com", Name: "Other"}, second)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, "Reader", user.Name)
	assert.True(t, second.Equal(user.LastLogin))

	stored, err := s.GetUserByEmail(ctx, "reader@bulletin.com")
	require.NoError(t, err)
	assert.True(t, second.Equal(stored.LastLogin))
	assert.True(t, first.Equal(stored.CreatedAt))

	count, err := s.users.CountDocuments(ctx, bson.D{{Key: "email", Value: "reader@bulletin.com"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStorage_GrantPremium(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	_, _, err := s.UpsertOnLogin(ctx, models.LoginPayload{Email: "reader@bulletin.com"}, now)
	require.NoError(t, err)

	record := models.PaymentRecord{Email: "reader@bulletin.com", Price: 9.99, TransactionID: "pi_1", Plan: "monthly", PaidAt: now}
	err = s.GrantPremium(ctx, "reader@bulletin.com", "monthly", now, now.Add(time.Hour), record)
	require.NoError(t, err)

	user, err := s.GetUserByEmail(ctx, "reader@bulletin.com")
	require.NoError(t, err)
	assert.True(t, user.IsPremium)
	assert.Equal(t, "monthly", user.CurrentPlan)
	require.NotNil(t, user.PremiumExpiresAt)
	assert.True(t, now.Add(time.Hour).Equal(*user.PremiumExpiresAt))

	payments, err := s.ListPayments(ctx, "reader@bulletin.com")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "pi_1", payments[0].TransactionID)

	t.Run("unknown user writes nothing", func(t *testing.T) {
		ghost := models.PaymentRecord{Email: "ghost@bulletin.com", Price: 1, TransactionID: "pi_2", Plan: "monthly", PaidAt: now}
		err := s.GrantPremium(ctx, "ghost@bulletin.com", "monthly", now, now.Add(time.Hour), ghost)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		payments, err := s.ListPayments(ctx, "ghost@bulletin.com")
		require.NoError(t, err)
		assert.Empty(t, payments)
	})

	t.Run("revoke", func(t *testing.T) {
		require.NoError(t, s.RevokePremium(ctx, "reader@bulletin.com", now))
		user, err := s.GetUserByEmail(ctx, "reader@bulletin.com")
		require.NoError(t, err)
		assert.False(t, user.IsPremium)
		assert.Empty(t, user.CurrentPlan)
	})
}

func TestStorage_UpdateProfileAndDelete(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	_, _, err := s.UpsertOnLogin(ctx, models.LoginPayload{Email: "reader@bulletin.com", Name: "Reader", Photo: "a.png"}, now)
	require.NoError(t, err)

	bio := "I read news"
	user, err := s.UpdateProfile(ctx, "reader@bulletin.com", models.ProfileUpdate{Bio: &bio}, now)
	require.NoError(t, err)
	assert.Equal(t, "Reader", user.Name)
	assert.Equal(t, "a.png", user.Photo)
	assert.Equal(t, bio, user.Bio)
	require.NotNil(t, user.UpdatedAt)

	_, err = s.UpdateProfile(ctx, "ghost@bulletin.com", models.ProfileUpdate{Bio: &bio}, now)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, s.DeleteUser(ctx, "reader@bulletin.com"))
	assert.ErrorIs(t, s.DeleteUser(ctx, "reader@bulletin.com"), apperr.ErrNotFound)
}

func TestStorage_ArticleWorkflow(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	id, err := s.CreateArticle(ctx, models.Article{Title: "Hello", AuthorEmail: "author@bulletin.com", Status: models.StatusPending, CreatedAt: now})
	require.NoError(t, err)

	pending, err := s.ListArticlesByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID.Hex())

	require.NoError(t, s.SetArticleStatus(ctx, id, models.StatusApproved, "", now))
	require.NoError(t, s.SetArticleStatus(ctx, id, models.StatusRejected, "off topic", now))

	article, err := s.ViewArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, article.Status)
	assert.Equal(t, "off topic", article.DeclineReason)
	assert.Equal(t, int64(1), article.Views)

	article, err = s.ViewArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), article.Views)

	require.NoError(t, s.SetArticleStatus(ctx, id, models.StatusRejected, "", now))
	article, err = s.ViewArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, article.Status)
	assert.Empty(t, article.DeclineReason, "rejection without a reason must not keep the previous one")

	require.NoError(t, s.SetArticleStatus(ctx, id, models.StatusRejected, "off topic", now))
	require.NoError(t, s.SetArticleStatus(ctx, id, models.StatusApproved, "", now))
	approved, err := s.ListArticlesByStatus(ctx, models.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Empty(t, approved[0].DeclineReason)

	title := "Hello, world"
	edited, err := s.UpdateArticle(ctx, id, models.ArticleEdit{Title: &title}, now)
	require.NoError(t, err)
	assert.Equal(t, title, edited.Title)
	assert.Equal(t, "author@bulletin.com", edited.AuthorEmail)

	mine, err := s.ListArticlesByAuthor(ctx, "author@bulletin.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, s.DeleteArticle(ctx, id))
	assert.ErrorIs(t, s.DeleteArticle(ctx, id), apperr.ErrNotFound)
	assert.ErrorIs(t, s.SetArticleStatus(ctx, id, models.StatusApproved, "", now), apperr.ErrNotFound)
	_, err = s.ViewArticle(ctx, "not-an-id")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestStorage_Publishers(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	id, err := s.CreatePublisher(ctx, models.Publisher{Name: "Daily Star", Image: "star.png", CreatedAt: time.Now()})
	require.NoError(t, err)

	list, err := s.ListPublishers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	name := "Daily Sun"
	p, err := s.UpdatePublisher(ctx, id, models.PublisherUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, p.Name)
	assert.Equal(t, "star.png", p.Image)

	require.NoError(t, s.DeletePublisher(ctx, id))
	_, err = s.GetPublisher(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
