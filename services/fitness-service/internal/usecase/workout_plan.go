package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
)

type WorkoutPlanUsecase interface {
	CreateWorkoutPlan(ctx context.Context, userID string, params CreateWorkoutPlanParams) (*model.WorkoutPlan, error)
	ListWorkoutPlans(ctx context.Context, userID string, status *string) ([]*model.WorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, userID, id string) (*model.WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, userID, id string, params UpdateWorkoutPlanParams) (*model.WorkoutPlan, error)

	// UpdateProgress records completed days and completes the plan once every day is done.
	UpdateProgress(ctx context.Context, userID, id string, daysCompleted int) (*model.WorkoutPlan, error)

	DeleteWorkoutPlan(ctx context.Context, userID, id string) error
}

type CreateWorkoutPlanParams struct {
	StartDate   *time.Time
	MethodKey   string
	MethodName  string
	Goal        string
	Level       string
	DaysPerWeek int
	TotalDays   int
	Status      string
	RoutineData any
}

// UpdateWorkoutPlanParams carries optional changes. Progress is merged into
// the stored progress.
type UpdateWorkoutPlanParams struct {
	StartDate   *time.Time
	MethodKey   *string
	MethodName  *string
	Goal        *string
	Level       *string
	DaysPerWeek *int
	Progress    *ProgressPatch
	Status      *string
	RoutineData any
}

type ProgressPatch struct {
	DaysCompleted *int
	TotalDays     *int
}

type workoutPlanUsecase struct {
	planRepo repository.WorkoutPlanRepository
	now      func() time.Time
}

func NewWorkoutPlanUsecase(planRepo repository.WorkoutPlanRepository) WorkoutPlanUsecase {
	return &workoutPlanUsecase{planRepo: planRepo, now: time.Now}
}

func (u *workoutPlanUsecase) CreateWorkoutPlan(
	ctx context.Context,
	userID string,
	params CreateWorkoutPlanParams,
) (*model.WorkoutPlan, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	startDate := u.now()
	if params.StartDate != nil {
		startDate = *params.StartDate
	}

	status := params.Status
	if status == "" {
		status = model.WorkoutPlanActive
	}

	return u.planRepo.CreateWorkoutPlan(ctx, &model.WorkoutPlan{
		UserID:      ownerID,
		StartDate:   startDate,
		MethodKey:   params.MethodKey,
		MethodName:  params.MethodName,
		Goal:        params.Goal,
		Level:       params.Level,
		DaysPerWeek: params.DaysPerWeek,
		Progress:    model.WorkoutProgress{TotalDays: params.TotalDays},
		Status:      status,
		RoutineData: params.RoutineData,
	})
}

func (u *workoutPlanUsecase) ListWorkoutPlans(
	ctx context.Context,
	userID string,
	status *string,
) ([]*model.WorkoutPlan, error) {
	return u.planRepo.ListWorkoutPlans(ctx, repository.FilterWorkoutPlansParams{UserID: userID, Status: status})
}

func (u *workoutPlanUsecase) GetWorkoutPlan(ctx context.Context, userID, id string) (*model.WorkoutPlan, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	plan, err := u.planRepo.GetWorkoutPlan(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := checkOwner(plan.UserID, userID); err != nil {
		return nil, err
	}

	return plan, nil
}

func (u *workoutPlanUsecase) UpdateWorkoutPlan(
	ctx context.Context,
	userID, id string,
	params UpdateWorkoutPlanParams,
) (*model.WorkoutPlan, error) {
	plan, err := u.GetWorkoutPlan(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	update := repository.UpdateWorkoutPlanParams{
		StartDate:   params.StartDate,
		MethodKey:   params.MethodKey,
		MethodName:  params.MethodName,
		Goal:        params.Goal,
		Level:       params.Level,
		DaysPerWeek: params.DaysPerWeek,
		Status:      params.Status,
		RoutineData: params.RoutineData,
	}
	if params.Progress != nil {
		progress := plan.Progress
		if params.Progress.DaysCompleted != nil {
			progress.DaysCompleted = *params.Progress.DaysCompleted
		}
		if params.Progress.TotalDays != nil {
			progress.TotalDays = *params.Progress.TotalDays
		}
		update.Progress = &progress
	}

	updated, err := u.planRepo.UpdateWorkoutPlan(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNoFieldsToUpdate) {
			return plan, nil
		}
		return nil, mapNotFound(err)
	}

	return updated, nil
}

func (u *workoutPlanUsecase) UpdateProgress(
	ctx context.Context,
	userID, id string,
	daysCompleted int,
) (*model.WorkoutPlan, error) {
	plan, err := u.GetWorkoutPlan(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	progress := plan.Progress
	progress.DaysCompleted = daysCompleted

	update := repository.UpdateWorkoutPlanParams{Progress: &progress}
	if progress.DaysCompleted >= progress.TotalDays {
		completed := model.WorkoutPlanCompleted
		update.Status = &completed
	}

	updated, err := u.planRepo.UpdateWorkoutPlan(ctx, id, update)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return updated, nil
}

func (u *workoutPlanUsecase) DeleteWorkoutPlan(ctx context.Context, userID, id string) error {
	if _, err := u.GetWorkoutPlan(ctx, userID, id); err != nil {
		return err
	}

	return mapNotFound(u.planRepo.DeleteWorkoutPlan(ctx, id))
}
