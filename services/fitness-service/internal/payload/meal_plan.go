package payload

import (
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
)

type CreateMealPlanRequest struct {
	Name        string                  `json:"name"        validate:"required,max=100"`
	Settings    MealPlanSettingsRequest `json:"settings"    validate:"required"`
	DailyTotals model.Macros            `json:"dailyTotals"`
	Meals       []MealRequest           `json:"meals"       validate:"dive"`
}

type MealPlanSettingsRequest struct {
	Calories    float64          `json:"calories"    validate:"required,gt=0"`
	MealsPerDay int              `json:"mealsPerDay" validate:"required,min=1,max=10"`
	Goal        string           `json:"goal"        validate:"required,oneof=loseFat maintainMuscle buildMuscle"`
	MacroRatio  model.MacroRatio `json:"macroRatio"`
}

type MealRequest struct {
	Name   string        `json:"name"   validate:"required"`
	Label  string        `json:"label"`
	Macros model.Macros  `json:"macros"`
	Foods  []FoodRequest `json:"foods"  validate:"dive"`
}

// FoodRequest.Amount accepts a number of grams or a portion description.
type FoodRequest struct {
	Type    string  `json:"type"    validate:"required,oneof=protein carb fat veggie fruit"`
	Name    string  `json:"name"    validate:"required"`
	Amount  any     `json:"amount"  validate:"required,food_amount"`
	Protein float64 `json:"protein" validate:"gte=0"`
	Carbs   float64 `json:"carbs"   validate:"gte=0"`
	Fat     float64 `json:"fat"     validate:"gte=0"`
}

func (r CreateMealPlanRequest) ToParams() usecase.CreateMealPlanParams {
	return usecase.CreateMealPlanParams{
		Name:        r.Name,
		Settings:    r.Settings.toModel(),
		DailyTotals: r.DailyTotals,
		Meals:       toMeals(r.Meals),
	}
}

type UpdateMealPlanRequest struct {
	Name        *string                  `json:"name"        validate:"omitempty,max=100"`
	Settings    *MealPlanSettingsRequest `json:"settings"`
	DailyTotals *model.Macros            `json:"dailyTotals"`
	Meals       []MealRequest            `json:"meals"       validate:"omitempty,dive"`
}

func (r UpdateMealPlanRequest) ToParams() usecase.UpdateMealPlanParams {
	params := usecase.UpdateMealPlanParams{
		Name:        r.Name,
		DailyTotals: r.DailyTotals,
		Meals:       toMeals(r.Meals),
	}
	if r.Settings != nil {
		settings := r.Settings.toModel()
		params.Settings = &settings
	}

	return params
}

func (r MealPlanSettingsRequest) toModel() model.MealPlanSettings {
	return model.MealPlanSettings{
		Calories:    r.Calories,
		MealsPerDay: r.MealsPerDay,
		Goal:        r.Goal,
		MacroRatio:  r.MacroRatio,
	}
}

func toMeals(reqs []MealRequest) []model.Meal {
	if reqs == nil {
		return nil
	}

	meals := make([]model.Meal, 0, len(reqs))
	for _, m := range reqs {
		foods := make([]model.Food, 0, len(m.Foods))
		for _, f := range m.Foods {
			foods = append(foods, model.Food{
				Type:    f.Type,
				Name:    f.Name,
				Amount:  f.Amount,
				Protein: f.Protein,
				Carbs:   f.Carbs,
				Fat:     f.Fat,
			})
		}

		meals = append(meals, model.Meal{
			Name:   m.Name,
			Label:  m.Label,
			Macros: m.Macros,
			Foods:  foods,
		})
	}

	return meals
}
