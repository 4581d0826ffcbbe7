package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
)

// PasswordResetTokenRepository defines the interface for password reset token operations.
type PasswordResetTokenRepository interface {
	// UpsertByUser stores token as the only reset token of userID, replacing any previous one.
	UpsertByUser(ctx context.Context, userID, token string, expiresAt time.Time) (*model.PasswordResetToken, error)

	// GetActiveByToken retrieves an unexpired token by its exact value.
	GetActiveByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)

	// ListActive returns every unexpired token, oldest first.
	ListActive(ctx context.Context) ([]*model.PasswordResetToken, error)

	// DeleteToken removes a token by id.
	DeleteToken(ctx context.Context, id string) error
}

const passwordResetTokenCollection = "password_reset_tokens"

type passwordResetTokenMongoRepository struct {
	db *mongo.Database
}

// NewPasswordResetTokenMongoRepository creates a new MongoDB repository for password reset tokens.
// Documents are removed by the server once created_at is older than ttl.
func NewPasswordResetTokenMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
	ttl time.Duration,
) PasswordResetTokenRepository {
	collection := db.Collection(passwordResetTokenCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "token", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())), // TTL index
		},
	}

	if err := syncTTL(ctx, db, passwordResetTokenCollection, "created_at", ttl); err != nil {
		logger.Fatal().Err(err).Msg("failed to update password reset token ttl")
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create password reset token indexes")
	}

	return &passwordResetTokenMongoRepository{
		db: db,
	}
}

func (r *passwordResetTokenMongoRepository) UpsertByUser(
	ctx context.Context,
	userID string,
	token string,
	expiresAt time.Time,
) (*model.PasswordResetToken, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"token":      token,
			"expires_at": expiresAt,
			"created_at": time.Now(),
		},
	}

	result := r.db.Collection(passwordResetTokenCollection).FindOneAndUpdate(
		ctx,
		bson.M{"user_id": objectID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var resetToken model.PasswordResetToken
	if err := result.Decode(&resetToken); err != nil {
		return nil, err
	}

	return &resetToken, nil
}

func (r *passwordResetTokenMongoRepository) GetActiveByToken(
	ctx context.Context,
	token string,
) (*model.PasswordResetToken, error) {
	filter := bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	var resetToken model.PasswordResetToken
	err := r.db.Collection(passwordResetTokenCollection).FindOne(ctx, filter).Decode(&resetToken)
	if err != nil {
		return nil, err
	}

	return &resetToken, nil
}

func (r *passwordResetTokenMongoRepository) ListActive(ctx context.Context) ([]*model.PasswordResetToken, error) {
	filter := bson.M{
		"expires_at": bson.M{"$gt": time.Now()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Collection(passwordResetTokenCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tokens []*model.PasswordResetToken
	if err := cursor.All(ctx, &tokens); err != nil {
		return nil, err
	}

	return tokens, nil
}

func (r *passwordResetTokenMongoRepository) DeleteToken(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(passwordResetTokenCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

const namespaceNotFound = 26

// syncTTL changes expireAfterSeconds of an existing TTL index on field so a
// new reset window does not conflict with the index created by an earlier run.
func syncTTL(ctx context.Context, db *mongo.Database, collection, field string, ttl time.Duration) error {
	cursor, err := db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == namespaceNotFound {
			return nil
		}
		return err
	}

	var specs []struct {
		Key                bson.D `bson:"key"`
		ExpireAfterSeconds *int64 `bson:"expireAfterSeconds"`
	}
	if err := cursor.All(ctx, &specs); err != nil {
		return err
	}

	seconds := int64(ttl.Seconds())
	for _, spec := range specs {
		if len(spec.Key) != 1 || spec.Key[0].Key != field || spec.ExpireAfterSeconds == nil {
			continue
		}
		if *spec.ExpireAfterSeconds == seconds {
			return nil
		}

		return db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: collection},
			{Key: "index", Value: bson.D{
				{Key: "keyPattern", Value: bson.D{{Key: field, Value: 1}}},
				{Key: "expireAfterSeconds", Value: seconds},
			}},
		}).Err()
	}

	return nil
}
