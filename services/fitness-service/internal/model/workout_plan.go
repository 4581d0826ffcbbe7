package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	WorkoutPlanActive    = "active"
	WorkoutPlanCompleted = "completed"
	WorkoutPlanPaused    = "paused"
)

type WorkoutPlan struct {
	ID          bson.ObjectID   `bson:"_id,omitempty"          json:"_id"`
	UserID      bson.ObjectID   `bson:"user_id"                json:"userId"`
	StartDate   time.Time       `bson:"start_date"             json:"startDate"`
	MethodKey   string          `bson:"method_key"             json:"methodKey"`
	MethodName  string          `bson:"method_name"            json:"methodName"`
	Goal        string          `bson:"goal"                   json:"goal"`
	Level       string          `bson:"level"                  json:"level"`
	DaysPerWeek int             `bson:"days_per_week"          json:"daysPerWeek"`
	Progress    WorkoutProgress `bson:"progress"               json:"progress"`
	Status      string          `bson:"status"                 json:"status"`
	RoutineData any             `bson:"routine_data,omitempty" json:"routineData,omitempty"`
	CreatedAt   time.Time       `bson:"created_at"             json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updated_at"             json:"updatedAt"`
}

type WorkoutProgress struct {
	DaysCompleted int `bson:"days_completed" json:"daysCompleted"`
	TotalDays     int `bson:"total_days"     json:"totalDays"`
}
