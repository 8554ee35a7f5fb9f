package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func getTestClient(t *testing.T) (*mongo.Client, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	cleanup := func() {
		_ = client.Disconnect(ctx)
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return client, cleanup
}

func getMigrationsPath(t *testing.T) string {
	projectRoot, err := filepath.Abs("../..")
	require.NoError(t, err)

	migrationsPath := filepath.Join(projectRoot, "migrations")
	t.Logf("Migrations path: %s", migrationsPath)
	return migrationsPath
}

func indexNames(t *testing.T, coll *mongo.Collection) map[string]bool {
	cur, err := coll.Indexes().List(context.Background())
	require.NoError(t, err)
	var specs []bson.M
	require.NoError(t, cur.All(context.Background(), &specs))

	names := make(map[string]bool, len(specs))
	for _, s := range specs {
		if name, ok := s["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestRunMigrations(t *testing.T) {
	client, cleanup := getTestClient(t)
	defer cleanup()

	err := Run(client, "bulletin_test", "schema_migrations", getMigrationsPath(t))
	require.NoError(t, err)

	db := client.Database("bulletin_test")
	require.True(t, indexNames(t, db.Collection("users"))["users_email_unique"], "users email index should exist")

	articleIdx := indexNames(t, db.Collection("article"))
	require.True(t, articleIdx["article_status"])
	require.True(t, articleIdx["article_author_email"])

	require.True(t, indexNames(t, db.Collection("payments"))["payments_email_paid_at"])

	ctx := context.Background()
	_, err = db.Collection("users").InsertOne(ctx, bson.M{"email": "dup@bulletin.com"})
	require.NoError(t, err)
	_, err = db.Collection("users").InsertOne(ctx, bson.M{"email": "dup@bulletin.com"})
	require.True(t, mongo.IsDuplicateKeyError(err), "second insert with the same email must violate the unique index")
}

func TestMigrationIdempotency(t *testing.T) {
	client, cleanup := getTestClient(t)
	defer cleanup()

	migrationsPath := getMigrationsPath(t)

	require.NoError(t, Run(client, "bulletin_test", "schema_migrations", migrationsPath))
	require.NoError(t, Run(client, "bulletin_test", "schema_migrations", migrationsPath),
		"running migrations twice should not fail")
}
