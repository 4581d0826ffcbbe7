package payload

import (
	"time"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
)

type CreateNutritionGoalRequest struct {
	Name               string                    `json:"name"               validate:"omitempty,max=100"`
	Status             string                    `json:"status"             validate:"omitempty,oneof=active completed archived"`
	StartDate          *time.Time                `json:"startDate"`
	CalorieCalculation CalorieCalculationRequest `json:"calorieCalculation" validate:"required"`
	MacroDistribution  MacroDistributionRequest  `json:"macroDistribution"`
}

type CalorieCalculationRequest struct {
	BMR                   *float64 `json:"bmr"                   validate:"omitempty,gte=0"`
	TDEE                  *float64 `json:"tdee"                  validate:"omitempty,gte=0"`
	CalorieTarget         *float64 `json:"calorieTarget"         validate:"required,gt=0"`
	GoalType              *string  `json:"goalType"              validate:"required,oneof=deficit aggressiveDeficit maintenance surplus"`
	EstimatedWeeklyChange *float64 `json:"estimatedWeeklyChange"`
}

type MacroDistributionRequest struct {
	Protein *MacroTargetRequest `json:"protein"`
	Carbs   *MacroTargetRequest `json:"carbs"`
	Fat     *MacroTargetRequest `json:"fat"`
}

type MacroTargetRequest struct {
	Grams      float64 `json:"grams"      validate:"gte=0"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

func (r CreateNutritionGoalRequest) ToParams() usecase.CreateNutritionGoalParams {
	calc := model.CalorieCalculation{
		BMR:                   r.CalorieCalculation.BMR,
		TDEE:                  r.CalorieCalculation.TDEE,
		EstimatedWeeklyChange: r.CalorieCalculation.EstimatedWeeklyChange,
	}
	if r.CalorieCalculation.CalorieTarget != nil {
		calc.CalorieTarget = *r.CalorieCalculation.CalorieTarget
	}
	if r.CalorieCalculation.GoalType != nil {
		calc.GoalType = *r.CalorieCalculation.GoalType
	}

	var macros model.MacroDistribution
	patch := r.MacroDistribution.toPatch()
	if patch.Protein != nil {
		macros.Protein = *patch.Protein
	}
	if patch.Carbs != nil {
		macros.Carbs = *patch.Carbs
	}
	if patch.Fat != nil {
		macros.Fat = *patch.Fat
	}

	return usecase.CreateNutritionGoalParams{
		Name:               r.Name,
		Status:             r.Status,
		StartDate:          r.StartDate,
		CalorieCalculation: calc,
		MacroDistribution:  macros,
	}
}

type UpdateNutritionGoalRequest struct {
	Name               *string                          `json:"name"               validate:"omitempty,max=100"`
	Status             *string                          `json:"status"             validate:"omitempty,oneof=active completed archived"`
	StartDate          *time.Time                       `json:"startDate"`
	CalorieCalculation *UpdateCalorieCalculationRequest `json:"calorieCalculation"`
	MacroDistribution  *MacroDistributionRequest        `json:"macroDistribution"`
}

type UpdateCalorieCalculationRequest struct {
	BMR                   *float64 `json:"bmr"                   validate:"omitempty,gte=0"`
	TDEE                  *float64 `json:"tdee"                  validate:"omitempty,gte=0"`
	CalorieTarget         *float64 `json:"calorieTarget"         validate:"omitempty,gt=0"`
	GoalType              *string  `json:"goalType"              validate:"omitempty,oneof=deficit aggressiveDeficit maintenance surplus"`
	EstimatedWeeklyChange *float64 `json:"estimatedWeeklyChange"`
}

func (r UpdateNutritionGoalRequest) ToParams() usecase.UpdateNutritionGoalParams {
	params := usecase.UpdateNutritionGoalParams{
		Name:      r.Name,
		Status:    r.Status,
		StartDate: r.StartDate,
	}

	if c := r.CalorieCalculation; c != nil {
		params.CalorieCalculation = &usecase.CalorieCalculationPatch{
			BMR:                   c.BMR,
			TDEE:                  c.TDEE,
			CalorieTarget:         c.CalorieTarget,
			GoalType:              c.GoalType,
			EstimatedWeeklyChange: c.EstimatedWeeklyChange,
		}
	}
	if r.MacroDistribution != nil {
		patch := r.MacroDistribution.toPatch()
		params.MacroDistribution = &patch
	}

	return params
}

func (r MacroDistributionRequest) toPatch() usecase.MacroDistributionPatch {
	return usecase.MacroDistributionPatch{
		Protein: r.Protein.toModel(),
		Carbs:   r.Carbs.toModel(),
		Fat:     r.Fat.toModel(),
	}
}

func (r *MacroTargetRequest) toModel() *model.MacroTarget {
	if r == nil {
		return nil
	}
	return &model.MacroTarget{Grams: r.Grams, Percentage: r.Percentage}
}
