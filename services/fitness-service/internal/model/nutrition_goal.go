package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	NutritionGoalActive    = "active"
	NutritionGoalCompleted = "completed"
	NutritionGoalArchived  = "archived"
)

const (
	GoalTypeDeficit           = "deficit"
	GoalTypeAggressiveDeficit = "aggressiveDeficit"
	GoalTypeMaintenance       = "maintenance"
	GoalTypeSurplus           = "surplus"
)

type NutritionGoal struct {
	ID                 bson.ObjectID      `bson:"_id,omitempty"       json:"_id"`
	UserID             bson.ObjectID      `bson:"user_id"             json:"userId"`
	Name               string             `bson:"name,omitempty"      json:"name,omitempty"`
	Status             string             `bson:"status"              json:"status"`
	StartDate          time.Time          `bson:"start_date"          json:"startDate"`
	CalorieCalculation CalorieCalculation `bson:"calorie_calculation" json:"calorieCalculation"`
	MacroDistribution  MacroDistribution  `bson:"macro_distribution"  json:"macroDistribution"`
	CreatedAt          time.Time          `bson:"created_at"          json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at"          json:"updatedAt"`
}

type CalorieCalculation struct {
	BMR                   *float64 `bson:"bmr,omitempty"                     json:"bmr,omitempty"`
	TDEE                  *float64 `bson:"tdee,omitempty"                    json:"tdee,omitempty"`
	CalorieTarget         float64  `bson:"calorie_target"                    json:"calorieTarget"`
	GoalType              string   `bson:"goal_type"                         json:"goalType"`
	EstimatedWeeklyChange *float64 `bson:"estimated_weekly_change,omitempty" json:"estimatedWeeklyChange,omitempty"`
}

type MacroDistribution struct {
	Protein MacroTarget `bson:"protein" json:"protein"`
	Carbs   MacroTarget `bson:"carbs"   json:"carbs"`
	Fat     MacroTarget `bson:"fat"     json:"fat"`
}

type MacroTarget struct {
	Grams      float64 `bson:"grams"      json:"grams"`
	Percentage float64 `bson:"percentage" json:"percentage"`
}
