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

type NutritionGoalRepository interface {
	CreateNutritionGoal(ctx context.Context, goal *model.NutritionGoal) (*model.NutritionGoal, error)
	GetNutritionGoal(ctx context.Context, id string) (*model.NutritionGoal, error)
	ListNutritionGoals(ctx context.Context, userID string) ([]*model.NutritionGoal, error)
	UpdateNutritionGoal(ctx context.Context, id string, params UpdateNutritionGoalParams) (*model.NutritionGoal, error)
	DeleteNutritionGoal(ctx context.Context, id string) error
}

type UpdateNutritionGoalParams struct {
	Name               *string
	Status             *string
	StartDate          *time.Time
	CalorieCalculation *model.CalorieCalculation
	MacroDistribution  *model.MacroDistribution
}

const nutritionGoalCollection = "nutrition_goals"

type nutritionGoalMongoRepository struct {
	db *mongo.Database
}

func NewNutritionGoalMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) NutritionGoalRepository {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := db.Collection(nutritionGoalCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create nutrition goal indexes")
	}

	return &nutritionGoalMongoRepository{db: db}
}

func (r *nutritionGoalMongoRepository) CreateNutritionGoal(
	ctx context.Context,
	goal *model.NutritionGoal,
) (*model.NutritionGoal, error) {
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	result, err := r.db.Collection(nutritionGoalCollection).InsertOne(ctx, goal)
	if err != nil {
		return nil, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	goal.ID = objectID

	return goal, nil
}

func (r *nutritionGoalMongoRepository) GetNutritionGoal(ctx context.Context, id string) (*model.NutritionGoal, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var goal model.NutritionGoal
	if err := r.db.Collection(nutritionGoalCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&goal); err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *nutritionGoalMongoRepository) ListNutritionGoals(
	ctx context.Context,
	userID string,
) ([]*model.NutritionGoal, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(nutritionGoalCollection).Find(ctx, bson.M{"user_id": objectID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []*model.NutritionGoal{}
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *nutritionGoalMongoRepository) UpdateNutritionGoal(
	ctx context.Context,
	id string,
	params UpdateNutritionGoalParams,
) (*model.NutritionGoal, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}
	if params.StartDate != nil {
		updateMap["start_date"] = *params.StartDate
	}
	if params.CalorieCalculation != nil {
		updateMap["calorie_calculation"] = params.CalorieCalculation
	}
	if params.MacroDistribution != nil {
		updateMap["macro_distribution"] = params.MacroDistribution
	}

	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	var goal model.NutritionGoal
	err = r.db.Collection(nutritionGoalCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&goal)
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *nutritionGoalMongoRepository) DeleteNutritionGoal(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(nutritionGoalCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
