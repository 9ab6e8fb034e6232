package http

import (
	"encoding/json"
	"net/http"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/handler/http/response"
)

type ClockHandler interface {
	Action(w http.ResponseWriter, r *http.Request)
	MyRecords(w http.ResponseWriter, r *http.Request)
}

type clockHandlerImpl struct {
	clockService clock.Service
}

func NewClockHandler(clockService clock.Service) ClockHandler {
	return &clockHandlerImpl{clockService: clockService}
}

// Action implements ClockHandler. One endpoint drives the two-state
// machine: IN opens a session, OUT closes it.
func (h *clockHandlerImpl) Action(w http.ResponseWriter, r *http.Request) {
	userID, err := claimUserID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req clock.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var rec clock.Record
	switch req.Type {
	case clock.ActionIn:
		rec, err = h.clockService.ClockIn(r.Context(), userID)
	case clock.ActionOut:
		rec, err = h.clockService.ClockOut(r.Context(), userID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, clock.ToResponse(rec))
}

// MyRecords implements ClockHandler.
func (h *clockHandlerImpl) MyRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := claimUserID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	records, err := h.clockService.MyRecords(r.Context(), userID,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]clock.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, clock.ToResponse(rec))
	}
	response.Success(w, responses)
}
