package user

import (
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/validator"
)

// ScheduleUpdate carries the admin-editable attendance configuration.
// Nil pointers clear the corresponding override.
type ScheduleUpdate struct {
	ContractType *string `json:"contract_type"`
	AMStart      *string `json:"am_start"`
	AMEnd        *string `json:"am_end"`
	PMStart      *string `json:"pm_start"`
	PMEnd        *string `json:"pm_end"`
	GraceMinutes *int    `json:"grace_minutes"`
	WorkingDays  []int   `json:"working_days"`
}

func (r *ScheduleUpdate) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{
		"am_start": r.AMStart,
		"am_end":   r.AMEnd,
		"pm_start": r.PMStart,
		"pm_end":   r.PMEnd,
	} {
		if v != nil && !validator.IsValidTimeOfDay(*v) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a valid HH:MM time",
			})
		}
	}

	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	for _, d := range r.WorkingDays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "working_days entries must be between 0 (Sunday) and 6 (Saturday)",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	TeamID       *string `json:"team_id"`
	ContractType *string `json:"contract_type"`
	AMStart      *string `json:"am_start"`
	AMEnd        *string `json:"am_end"`
	PMStart      *string `json:"pm_start"`
	PMEnd        *string `json:"pm_end"`
	GraceMinutes *int    `json:"grace_minutes"`
	WorkingDays  []int   `json:"working_days"`
	Active       bool    `json:"active"`
}

func ToResponse(u User) Response {
	return Response{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         string(u.Role),
		TeamID:       u.TeamID,
		ContractType: u.ContractType,
		AMStart:      u.AMStart,
		AMEnd:        u.AMEnd,
		PMStart:      u.PMStart,
		PMEnd:        u.PMEnd,
		GraceMinutes: u.GraceMinutes,
		WorkingDays:  u.WorkingDays,
		Active:       u.Active,
	}
}
