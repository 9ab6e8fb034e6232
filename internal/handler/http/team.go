package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/team"
	"github.com/stafftrack/timeclock-backend-go/internal/handler/http/response"
)

type TeamHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type teamHandlerImpl struct {
	teamRepo team.Repository
}

func NewTeamHandler(teamRepo team.Repository) TeamHandler {
	return &teamHandlerImpl{teamRepo: teamRepo}
}

// List implements TeamHandler.
func (h *teamHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]team.Response, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, team.ToResponse(t))
	}
	response.Success(w, responses)
}

// Get implements TeamHandler.
func (h *teamHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.teamRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, team.ToResponse(t))
}

// Create implements TeamHandler.
func (h *teamHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req team.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.teamRepo.Create(r.Context(), team.Team{
		Name:      req.Name,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Team created", team.ToResponse(created))
}

// Update implements TeamHandler.
func (h *teamHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req team.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	t := team.Team{
		ID:        chi.URLParam(r, "id"),
		Name:      req.Name,
		ManagerID: req.ManagerID,
	}
	if err := h.teamRepo.Update(r.Context(), t); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Team updated", team.ToResponse(t))
}

// Delete implements TeamHandler.
func (h *teamHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.teamRepo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Team deleted", nil)
}
