package payload

import (
	"encoding/json"
	"time"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
)

type CreateWorkoutPlanRequest struct {
	StartDate   *time.Time      `json:"startDate"`
	MethodKey   string          `json:"methodKey"   validate:"required"`
	MethodName  string          `json:"methodName"  validate:"required"`
	Goal        string          `json:"goal"        validate:"required,oneof=loseFat maintainMuscle buildMuscle gainStrength"`
	Level       string          `json:"level"       validate:"required,oneof=beginner intermediate advanced"`
	DaysPerWeek int             `json:"daysPerWeek" validate:"required,min=1,max=7"`
	TotalDays   int             `json:"totalDays"   validate:"required,min=1"`
	RoutineData json.RawMessage `json:"routineData"`
}

func (r CreateWorkoutPlanRequest) ToParams() (usecase.CreateWorkoutPlanParams, error) {
	routine, err := decodeRoutine(r.RoutineData)
	if err != nil {
		return usecase.CreateWorkoutPlanParams{}, err
	}

	return usecase.CreateWorkoutPlanParams{
		StartDate:   r.StartDate,
		MethodKey:   r.MethodKey,
		MethodName:  r.MethodName,
		Goal:        r.Goal,
		Level:       r.Level,
		DaysPerWeek: r.DaysPerWeek,
		TotalDays:   r.TotalDays,
		RoutineData: routine,
	}, nil
}

type UpdateWorkoutPlanRequest struct {
	StartDate   *time.Time       `json:"startDate"`
	MethodKey   *string          `json:"methodKey"   validate:"omitempty,min=1"`
	MethodName  *string          `json:"methodName"  validate:"omitempty,min=1"`
	Goal        *string          `json:"goal"        validate:"omitempty,oneof=loseFat maintainMuscle buildMuscle gainStrength"`
	Level       *string          `json:"level"       validate:"omitempty,oneof=beginner intermediate advanced"`
	DaysPerWeek *int             `json:"daysPerWeek" validate:"omitempty,min=1,max=7"`
	Progress    *ProgressRequest `json:"progress"`
	Status      *string          `json:"status"      validate:"omitempty,oneof=active completed paused"`
	RoutineData json.RawMessage  `json:"routineData"`
}

type ProgressRequest struct {
	DaysCompleted *int `json:"daysCompleted" validate:"omitempty,min=0"`
	TotalDays     *int `json:"totalDays"     validate:"omitempty,min=1"`
}

func (r UpdateWorkoutPlanRequest) ToParams() (usecase.UpdateWorkoutPlanParams, error) {
	routine, err := decodeRoutine(r.RoutineData)
	if err != nil {
		return usecase.UpdateWorkoutPlanParams{}, err
	}

	params := usecase.UpdateWorkoutPlanParams{
		StartDate:   r.StartDate,
		MethodKey:   r.MethodKey,
		MethodName:  r.MethodName,
		Goal:        r.Goal,
		Level:       r.Level,
		DaysPerWeek: r.DaysPerWeek,
		Status:      r.Status,
		RoutineData: routine,
	}
	if r.Progress != nil {
		params.Progress = &usecase.ProgressPatch{
			DaysCompleted: r.Progress.DaysCompleted,
			TotalDays:     r.Progress.TotalDays,
		}
	}

	return params, nil
}

type UpdateProgressRequest struct {
	DaysCompleted *int `json:"daysCompleted" validate:"required,min=0"`
}

// decodeRoutine turns raw routine JSON into plain maps and slices for storage.
func decodeRoutine(raw json.RawMessage) (any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var routine any
	if err := json.Unmarshal(raw, &routine); err != nil {
		return nil, err
	}

	return routine, nil
}
