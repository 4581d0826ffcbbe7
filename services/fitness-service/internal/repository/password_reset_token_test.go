package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestPasswordResetTokenMongoRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewPasswordResetTokenMongoRepository(ctx, testLogger(), db, time.Hour)

	userID := bson.NewObjectID().Hex()
	expiresAt := time.Now().Add(time.Hour)

	first, err := repo.UpsertByUser(ctx, userID, "aaaa1111", expiresAt)
	require.NoError(t, err)
	assert.Equal(t, userID, first.UserID.Hex())

	t.Run("upsert replaces the previous token", func(t *testing.T) {
		second, err := repo.UpsertByUser(ctx, userID, "bbbb2222", expiresAt)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "bbbb2222", second.Token)

		count, err := db.Collection(passwordResetTokenCollection).CountDocuments(ctx, bson.M{"user_id": second.UserID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		_, err = repo.GetActiveByToken(ctx, "aaaa1111")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	t.Run("expired tokens are not active", func(t *testing.T) {
		otherUser := bson.NewObjectID().Hex()
		_, err := repo.UpsertByUser(ctx, otherUser, "cccc3333", time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = repo.GetActiveByToken(ctx, "cccc3333")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)

		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "bbbb2222", active[0].Token)
	})

	t.Run("delete", func(t *testing.T) {
		token, err := repo.GetActiveByToken(ctx, "bbbb2222")
		require.NoError(t, err)

		require.NoError(t, repo.DeleteToken(ctx, token.ID.Hex()))

		_, err = repo.GetActiveByToken(ctx, "bbbb2222")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})
}

func TestPasswordResetTokenMongoRepository_ChangedWindow(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	NewPasswordResetTokenMongoRepository(ctx, testLogger(), db, time.Hour)
	NewPasswordResetTokenMongoRepository(ctx, testLogger(), db, 2*time.Hour)

	cursor, err := db.Collection(passwordResetTokenCollection).Indexes().List(ctx)
	require.NoError(t, err)

	var specs []bson.M
	require.NoError(t, cursor.All(ctx, &specs))

	var ttl any
	for _, spec := range specs {
		if spec["name"] == "created_at_1" {
			ttl = spec["expireAfterSeconds"]
		}
	}
	require.NotNil(t, ttl)
	assert.EqualValues(t, 7200, ttl)
}
