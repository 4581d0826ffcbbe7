package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User represents a registered account. PasswordHash never leaves the service.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"           json:"_id"`
	DisplayName  string        `bson:"display_name"            json:"displayName"`
	Email        string        `bson:"email"                   json:"email"`
	PasswordHash string        `bson:"password_hash,omitempty" json:"-"`
	Profile      *Profile      `bson:"profile,omitempty"       json:"profile,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"              json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"              json:"updatedAt"`
	LastLoginAt  *time.Time    `bson:"last_login_at,omitempty" json:"lastLogin,omitempty"`
}

// Profile holds the body metrics used by the calculators.
type Profile struct {
	Gender        string         `bson:"gender,omitempty"         json:"gender,omitempty"`
	Age           *int           `bson:"age,omitempty"            json:"age,omitempty"`
	Height        *float64       `bson:"height,omitempty"         json:"height,omitempty"`
	Weight        *float64       `bson:"weight,omitempty"         json:"weight,omitempty"`
	DailyActivity *DailyActivity `bson:"daily_activity,omitempty" json:"dailyActivity,omitempty"`
}

type DailyActivity struct {
	SleepHours      *float64 `bson:"sleep_hours,omitempty"      json:"sleepHours,omitempty"`
	SittingHours    *float64 `bson:"sitting_hours,omitempty"    json:"sittingHours,omitempty"`
	WalkingMinutes  *float64 `bson:"walking_minutes,omitempty"  json:"walkingMinutes,omitempty"`
	StrengthMinutes *float64 `bson:"strength_minutes,omitempty" json:"strengthMinutes,omitempty"`
	CardioMinutes   *float64 `bson:"cardio_minutes,omitempty"   json:"cardioMinutes,omitempty"`
}
