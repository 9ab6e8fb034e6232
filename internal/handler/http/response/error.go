package response

import (
	"errors"
	"net/http"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/auth"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/report"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/team"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/validator"
	"github.com/stafftrack/timeclock-backend-go/internal/service/directory"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrDirectoryUnavailable):
		InternalServerError(w, "Directory service unavailable")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")

	// Team domain errors
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, team.ErrTeamNameExists):
		Conflict(w, "Team name already exists")

	// Clock state machine rejections
	case errors.Is(err, clock.ErrNotConfigured):
		Forbidden(w, err.Error())
	case errors.Is(err, clock.ErrNonWorkingDay),
		errors.Is(err, clock.ErrOutsideWindow),
		errors.Is(err, clock.ErrPastEndOfDay):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, clock.ErrAlreadyOpen),
		errors.Is(err, clock.ErrNoOpenSession):
		Conflict(w, err.Error())
	case errors.Is(err, clock.ErrRecordNotFound):
		NotFound(w, "Clock record not found")

	// Report errors
	case errors.Is(err, report.ErrRangeRequired):
		BadRequest(w, err.Error(), nil)

	// Sync guard
	case errors.Is(err, directory.ErrSyncInProgress):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
