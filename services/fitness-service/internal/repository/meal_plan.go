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

type MealPlanRepository interface {
	CreateMealPlan(ctx context.Context, plan *model.MealPlan) (*model.MealPlan, error)
	GetMealPlan(ctx context.Context, id string) (*model.MealPlan, error)
	ListMealPlans(ctx context.Context, userID string) ([]*model.MealPlan, error)
	UpdateMealPlan(ctx context.Context, id string, params UpdateMealPlanParams) (*model.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id string) error
}

// UpdateMealPlanParams replaces the top-level fields that are not nil.
type UpdateMealPlanParams struct {
	Name        *string
	Settings    *model.MealPlanSettings
	DailyTotals *model.Macros
	Meals       []model.Meal
}

const mealPlanCollection = "meal_plans"

type mealPlanMongoRepository struct {
	db *mongo.Database
}

func NewMealPlanMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) MealPlanRepository {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := db.Collection(mealPlanCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create meal plan indexes")
	}

	return &mealPlanMongoRepository{db: db}
}

func (r *mealPlanMongoRepository) CreateMealPlan(ctx context.Context, plan *model.MealPlan) (*model.MealPlan, error) {
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.db.Collection(mealPlanCollection).InsertOne(ctx, plan)
	if err != nil {
		return nil, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	plan.ID = objectID

	return plan, nil
}

func (r *mealPlanMongoRepository) GetMealPlan(ctx context.Context, id string) (*model.MealPlan, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var plan model.MealPlan
	if err := r.db.Collection(mealPlanCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *mealPlanMongoRepository) ListMealPlans(ctx context.Context, userID string) ([]*model.MealPlan, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(mealPlanCollection).Find(ctx, bson.M{"user_id": objectID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []*model.MealPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *mealPlanMongoRepository) UpdateMealPlan(
	ctx context.Context,
	id string,
	params UpdateMealPlanParams,
) (*model.MealPlan, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Settings != nil {
		updateMap["settings"] = params.Settings
	}
	if params.DailyTotals != nil {
		updateMap["daily_totals"] = params.DailyTotals
	}
	if params.Meals != nil {
		updateMap["meals"] = params.Meals
	}

	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	var plan model.MealPlan
	err = r.db.Collection(mealPlanCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&plan)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *mealPlanMongoRepository) DeleteMealPlan(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(mealPlanCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
