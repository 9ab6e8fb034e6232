package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/report"
	"github.com/stafftrack/timeclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	UserDaily(w http.ResponseWriter, r *http.Request)
	UserWeekly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Summary implements ReportHandler. Scope narrows by user_ids or
// team_id; with neither, every active user is included.
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := report.Request{
		From:   q.Get("from"),
		To:     q.Get("to"),
		TeamID: q.Get("team_id"),
	}
	if raw := q.Get("user_ids"); raw != "" {
		req.UserIDs = strings.Split(raw, ",")
	}

	summary, err := h.reportService.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// MySummary implements ReportHandler: the caller's own attendance.
func (h *reportHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := claimUserID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	q := r.URL.Query()
	summary, err := h.reportService.Summary(r.Context(), report.Request{
		From:    q.Get("from"),
		To:      q.Get("to"),
		UserIDs: []string{userID},
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// UserDaily implements ReportHandler.
func (h *reportHandlerImpl) UserDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	totals, err := h.reportService.UserDaily(r.Context(),
		chi.URLParam(r, "id"), q.Get("from"), q.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, totals)
}

// UserWeekly implements ReportHandler.
func (h *reportHandlerImpl) UserWeekly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	totals, err := h.reportService.UserWeekly(r.Context(),
		chi.URLParam(r, "id"), q.Get("from"), q.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, totals)
}
