package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MealGoalLoseFat        = "loseFat"
	MealGoalMaintainMuscle = "maintainMuscle"
	MealGoalBuildMuscle    = "buildMuscle"
)

type MealPlan struct {
	ID          bson.ObjectID    `bson:"_id,omitempty" json:"_id"`
	UserID      bson.ObjectID    `bson:"user_id"       json:"userId"`
	Name        string           `bson:"name"          json:"name"`
	Settings    MealPlanSettings `bson:"settings"      json:"settings"`
	DailyTotals Macros           `bson:"daily_totals"  json:"dailyTotals"`
	Meals       []Meal           `bson:"meals"         json:"meals"`
	CreatedAt   time.Time        `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updated_at"    json:"updatedAt"`
}

type MealPlanSettings struct {
	Calories    float64    `bson:"calories"      json:"calories"`
	MealsPerDay int        `bson:"meals_per_day" json:"mealsPerDay"`
	Goal        string     `bson:"goal"          json:"goal"`
	MacroRatio  MacroRatio `bson:"macro_ratio"   json:"macroRatio"`
}

type MacroRatio struct {
	Protein float64 `bson:"protein" json:"protein"`
	Carbs   float64 `bson:"carbs"   json:"carbs"`
	Fat     float64 `bson:"fat"     json:"fat"`
}

type Macros struct {
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein"  json:"protein"`
	Carbs    float64 `bson:"carbs"    json:"carbs"`
	Fat      float64 `bson:"fat"      json:"fat"`
}

type Meal struct {
	Name   string `bson:"name"   json:"name"`
	Label  string `bson:"label"  json:"label"`
	Macros Macros `bson:"macros" json:"macros"`
	Foods  []Food `bson:"foods"  json:"foods"`
}

// Food is one line of a meal. Amount is either a number of grams or a
// free-form portion such as "1 cup".
type Food struct {
	Type    string  `bson:"type"    json:"type"`
	Name    string  `bson:"name"    json:"name"`
	Amount  any     `bson:"amount"  json:"amount"`
	Protein float64 `bson:"protein" json:"protein"`
	Carbs   float64 `bson:"carbs"   json:"carbs"`
	Fat     float64 `bson:"fat"     json:"fat"`
}
