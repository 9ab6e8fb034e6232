package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userRepo user.Repository
}

func NewUserHandler(userRepo user.Repository) UserHandler {
	return &userHandlerImpl{userRepo: userRepo}
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]user.Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	response.Success(w, responses)
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.userRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}

// Me implements UserHandler.
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := claimUserID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}

// UpdateSchedule implements UserHandler: admins configure the
// attendance contract, schedule overrides, grace, and working days.
func (h *userHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req user.ScheduleUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.userRepo.UpdateSchedule(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule updated", user.ToResponse(u))
}
