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

type WorkoutPlanRepository interface {
	CreateWorkoutPlan(ctx context.Context, plan *model.WorkoutPlan) (*model.WorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, id string) (*model.WorkoutPlan, error)
	ListWorkoutPlans(ctx context.Context, params FilterWorkoutPlansParams) ([]*model.WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, id string, params UpdateWorkoutPlanParams) (*model.WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, id string) error
}

// FilterWorkoutPlansParams selects the plans of one user, optionally by status.
type FilterWorkoutPlansParams struct {
	UserID string
	Status *string
}

type UpdateWorkoutPlanParams struct {
	StartDate   *time.Time
	MethodKey   *string
	MethodName  *string
	Goal        *string
	Level       *string
	DaysPerWeek *int
	Progress    *model.WorkoutProgress
	Status      *string
	RoutineData any
}

const workoutPlanCollection = "workout_plans"

type workoutPlanMongoRepository struct {
	db *mongo.Database
}

func NewWorkoutPlanMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) WorkoutPlanRepository {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := db.Collection(workoutPlanCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create workout plan indexes")
	}

	return &workoutPlanMongoRepository{db: db}
}

func (r *workoutPlanMongoRepository) CreateWorkoutPlan(
	ctx context.Context,
	plan *model.WorkoutPlan,
) (*model.WorkoutPlan, error) {
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.db.Collection(workoutPlanCollection).InsertOne(ctx, plan)
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

func (r *workoutPlanMongoRepository) GetWorkoutPlan(ctx context.Context, id string) (*model.WorkoutPlan, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var plan model.WorkoutPlan
	if err := r.db.Collection(workoutPlanCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *workoutPlanMongoRepository) ListWorkoutPlans(
	ctx context.Context,
	params FilterWorkoutPlansParams,
) ([]*model.WorkoutPlan, error) {
	objectID, err := bson.ObjectIDFromHex(params.UserID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": objectID}
	if params.Status != nil {
		filter["status"] = *params.Status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(workoutPlanCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []*model.WorkoutPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *workoutPlanMongoRepository) UpdateWorkoutPlan(
	ctx context.Context,
	id string,
	params UpdateWorkoutPlanParams,
) (*model.WorkoutPlan, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.StartDate != nil {
		updateMap["start_date"] = *params.StartDate
	}
	if params.MethodKey != nil {
		updateMap["method_key"] = *params.MethodKey
	}
	if params.MethodName != nil {
		updateMap["method_name"] = *params.MethodName
	}
	if params.Goal != nil {
		updateMap["goal"] = *params.Goal
	}
	if params.Level != nil {
		updateMap["level"] = *params.Level
	}
	if params.DaysPerWeek != nil {
		updateMap["days_per_week"] = *params.DaysPerWeek
	}
	if params.Progress != nil {
		updateMap["progress"] = params.Progress
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}
	if params.RoutineData != nil {
		updateMap["routine_data"] = params.RoutineData
	}

	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	var plan model.WorkoutPlan
	err = r.db.Collection(workoutPlanCollection).FindOneAndUpdate(
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

func (r *workoutPlanMongoRepository) DeleteWorkoutPlan(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(workoutPlanCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
