package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
)

type NutritionGoalUsecase interface {
	CreateNutritionGoal(ctx context.Context, userID string, params CreateNutritionGoalParams) (*model.NutritionGoal, error)
	ListNutritionGoals(ctx context.Context, userID string) ([]*model.NutritionGoal, error)
	GetNutritionGoal(ctx context.Context, userID, id string) (*model.NutritionGoal, error)
	UpdateNutritionGoal(
		ctx context.Context,
		userID, id string,
		params UpdateNutritionGoalParams,
	) (*model.NutritionGoal, error)
	DeleteNutritionGoal(ctx context.Context, userID, id string) error
}

type CreateNutritionGoalParams struct {
	Name               string
	Status             string
	StartDate          *time.Time
	CalorieCalculation model.CalorieCalculation
	MacroDistribution  model.MacroDistribution
}

// UpdateNutritionGoalParams carries optional changes. The calorie calculation
// and macro distribution are merged into the stored values.
type UpdateNutritionGoalParams struct {
	Name               *string
	Status             *string
	StartDate          *time.Time
	CalorieCalculation *CalorieCalculationPatch
	MacroDistribution  *MacroDistributionPatch
}

type CalorieCalculationPatch struct {
	BMR                   *float64
	TDEE                  *float64
	CalorieTarget         *float64
	GoalType              *string
	EstimatedWeeklyChange *float64
}

type MacroDistributionPatch struct {
	Protein *model.MacroTarget
	Carbs   *model.MacroTarget
	Fat     *model.MacroTarget
}

type nutritionGoalUsecase struct {
	goalRepo repository.NutritionGoalRepository
	now      func() time.Time
}

func NewNutritionGoalUsecase(goalRepo repository.NutritionGoalRepository) NutritionGoalUsecase {
	return &nutritionGoalUsecase{goalRepo: goalRepo, now: time.Now}
}

func (u *nutritionGoalUsecase) CreateNutritionGoal(
	ctx context.Context,
	userID string,
	params CreateNutritionGoalParams,
) (*model.NutritionGoal, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	status := params.Status
	if status == "" {
		status = model.NutritionGoalActive
	}

	startDate := u.now()
	if params.StartDate != nil {
		startDate = *params.StartDate
	}

	return u.goalRepo.CreateNutritionGoal(ctx, &model.NutritionGoal{
		UserID:             ownerID,
		Name:               params.Name,
		Status:             status,
		StartDate:          startDate,
		CalorieCalculation: params.CalorieCalculation,
		MacroDistribution:  params.MacroDistribution,
	})
}

func (u *nutritionGoalUsecase) ListNutritionGoals(ctx context.Context, userID string) ([]*model.NutritionGoal, error) {
	return u.goalRepo.ListNutritionGoals(ctx, userID)
}

func (u *nutritionGoalUsecase) GetNutritionGoal(ctx context.Context, userID, id string) (*model.NutritionGoal, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	goal, err := u.goalRepo.GetNutritionGoal(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := checkOwner(goal.UserID, userID); err != nil {
		return nil, err
	}

	return goal, nil
}

func (u *nutritionGoalUsecase) UpdateNutritionGoal(
	ctx context.Context,
	userID, id string,
	params UpdateNutritionGoalParams,
) (*model.NutritionGoal, error) {
	goal, err := u.GetNutritionGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	update := repository.UpdateNutritionGoalParams{
		Name:      params.Name,
		Status:    params.Status,
		StartDate: params.StartDate,
	}
	if params.CalorieCalculation != nil {
		update.CalorieCalculation = mergeCalorieCalculation(goal.CalorieCalculation, params.CalorieCalculation)
	}
	if params.MacroDistribution != nil {
		update.MacroDistribution = mergeMacroDistribution(goal.MacroDistribution, params.MacroDistribution)
	}

	if update == (repository.UpdateNutritionGoalParams{}) {
		return goal, nil
	}

	updated, err := u.goalRepo.UpdateNutritionGoal(ctx, id, update)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return updated, nil
}

func (u *nutritionGoalUsecase) DeleteNutritionGoal(ctx context.Context, userID, id string) error {
	if _, err := u.GetNutritionGoal(ctx, userID, id); err != nil {
		return err
	}

	return mapNotFound(u.goalRepo.DeleteNutritionGoal(ctx, id))
}

func mergeCalorieCalculation(
	current model.CalorieCalculation,
	patch *CalorieCalculationPatch,
) *model.CalorieCalculation {
	merged := current

	if patch.BMR != nil {
		merged.BMR = patch.BMR
	}
	if patch.TDEE != nil {
		merged.TDEE = patch.TDEE
	}
	if patch.CalorieTarget != nil {
		merged.CalorieTarget = *patch.CalorieTarget
	}
	if patch.GoalType != nil {
		merged.GoalType = *patch.GoalType
	}
	if patch.EstimatedWeeklyChange != nil {
		merged.EstimatedWeeklyChange = patch.EstimatedWeeklyChange
	}

	return &merged
}

func mergeMacroDistribution(current model.MacroDistribution, patch *MacroDistributionPatch) *model.MacroDistribution {
	merged := current

	if patch.Protein != nil {
		merged.Protein = *patch.Protein
	}
	if patch.Carbs != nil {
		merged.Carbs = *patch.Carbs
	}
	if patch.Fat != nil {
		merged.Fat = *patch.Fat
	}

	return &merged
}
