package team

import (
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Name      string  `json:"name"`
	ManagerID *string `json:"manager_id"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ManagerID *string `json:"manager_id"`
}

func ToResponse(t Team) Response {
	return Response{ID: t.ID, Name: t.Name, ManagerID: t.ManagerID}
}
