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

// ErrNoFieldsToUpdate is returned when an update carries no fields.
var ErrNoFieldsToUpdate = errors.New("no fields to update")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserWithoutCredentials(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be updated.
type UpdateUserParams struct {
	DisplayName  *string
	Email        *string
	PasswordHash *string
	Profile      *model.Profile
	LastLoginAt  *time.Time
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	return r.findByID(ctx, id)
}

// GetUserWithoutCredentials loads a user with the password hash projected out.
func (r *userMongoRepository) GetUserWithoutCredentials(ctx context.Context, id string) (*model.User, error) {
	return r.findByID(ctx, id, options.FindOne().SetProjection(bson.M{"password_hash": 0}))
}

func (r *userMongoRepository) findByID(
	ctx context.Context,
	id string,
	opts ...options.Lister[options.FindOneOptions],
) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID}, opts...)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.DisplayName != nil {
		updateMap["display_name"] = *params.DisplayName
	}
	if params.Email != nil {
		updateMap["email"] = *params.Email
	}
	if params.PasswordHash != nil {
		updateMap["password_hash"] = *params.PasswordHash
	}
	if params.Profile != nil {
		updateMap["profile"] = params.Profile
	}
	if params.LastLoginAt != nil {
		updateMap["last_login_at"] = *params.LastLoginAt
	}

	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
