package clock

import (
	"time"

	"github.com/stafftrack/timeclock-backend-go/internal/pkg/validator"
)

// Clock action types.
const (
	ActionIn  = "IN"
	ActionOut = "OUT"
)

type ActionRequest struct {
	Type string `json:"type"`
}

func (r *ActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != ActionIn && r.Type != ActionOut {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Date          string  `json:"date"`
	ClockInAt     string  `json:"clock_in_at"`
	ClockOutAt    *string `json:"clock_out_at"`
	LateMinutes   int     `json:"late_minutes"`
	WorkedMinutes int     `json:"worked_minutes"`
	Source        string  `json:"source"`
}

func ToResponse(rec Record) RecordResponse {
	var out *string
	if rec.ClockOutAt != nil {
		s := rec.ClockOutAt.Format(time.RFC3339)
		out = &s
	}
	return RecordResponse{
		ID:            rec.ID,
		UserID:        rec.UserID,
		Date:          rec.Date.Format("2006-01-02"),
		ClockInAt:     rec.ClockInAt.Format(time.RFC3339),
		ClockOutAt:    out,
		LateMinutes:   rec.LateMinutes,
		WorkedMinutes: rec.WorkedMinutes,
		Source:        rec.Source,
	}
}
