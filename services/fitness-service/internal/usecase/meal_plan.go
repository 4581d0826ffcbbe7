package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
)

type MealPlanUsecase interface {
	CreateMealPlan(ctx context.Context, userID string, params CreateMealPlanParams) (*model.MealPlan, error)
	ListMealPlans(ctx context.Context, userID string) ([]*model.MealPlan, error)
	GetMealPlan(ctx context.Context, userID, id string) (*model.MealPlan, error)
	UpdateMealPlan(ctx context.Context, userID, id string, params UpdateMealPlanParams) (*model.MealPlan, error)
	DeleteMealPlan(ctx context.Context, userID, id string) error
}

type CreateMealPlanParams struct {
	Name        string
	Settings    model.MealPlanSettings
	DailyTotals model.Macros
	Meals       []model.Meal
}

// UpdateMealPlanParams replaces every top-level field that is set.
type UpdateMealPlanParams = repository.UpdateMealPlanParams

type mealPlanUsecase struct {
	planRepo repository.MealPlanRepository
}

func NewMealPlanUsecase(planRepo repository.MealPlanRepository) MealPlanUsecase {
	return &mealPlanUsecase{planRepo: planRepo}
}

func (u *mealPlanUsecase) CreateMealPlan(
	ctx context.Context,
	userID string,
	params CreateMealPlanParams,
) (*model.MealPlan, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	meals := params.Meals
	if meals == nil {
		meals = []model.Meal{}
	}

	return u.planRepo.CreateMealPlan(ctx, &model.MealPlan{
		UserID:      ownerID,
		Name:        params.Name,
		Settings:    params.Settings,
		DailyTotals: params.DailyTotals,
		Meals:       meals,
	})
}

func (u *mealPlanUsecase) ListMealPlans(ctx context.Context, userID string) ([]*model.MealPlan, error) {
	return u.planRepo.ListMealPlans(ctx, userID)
}

func (u *mealPlanUsecase) GetMealPlan(ctx context.Context, userID, id string) (*model.MealPlan, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	plan, err := u.planRepo.GetMealPlan(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := checkOwner(plan.UserID, userID); err != nil {
		return nil, err
	}

	return plan, nil
}

func (u *mealPlanUsecase) UpdateMealPlan(
	ctx context.Context,
	userID, id string,
	params UpdateMealPlanParams,
) (*model.MealPlan, error) {
	plan, err := u.GetMealPlan(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Name == nil && params.Settings == nil && params.DailyTotals == nil && params.Meals == nil {
		return plan, nil
	}

	updated, err := u.planRepo.UpdateMealPlan(ctx, id, params)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return updated, nil
}

func (u *mealPlanUsecase) DeleteMealPlan(ctx context.Context, userID, id string) error {
	if _, err := u.GetMealPlan(ctx, userID, id); err != nil {
		return err
	}

	return mapNotFound(u.planRepo.DeleteMealPlan(ctx, id))
}
