package http

import (
	"net/http"

	"github.com/stafftrack/timeclock-backend-go/internal/handler/http/response"
	"github.com/stafftrack/timeclock-backend-go/internal/service/directory"
)

type SyncHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	directoryService *directory.Service
}

func NewSyncHandler(directoryService *directory.Service) SyncHandler {
	return &syncHandlerImpl{directoryService: directoryService}
}

// Trigger implements SyncHandler. A run already in progress is a
// conflict, not a queueing request.
func (h *syncHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	if h.directoryService == nil {
		response.BadRequest(w, "Directory sync is not configured", nil)
		return
	}

	result, err := h.directoryService.Sync(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Directory sync finished", result)
}

// Status implements SyncHandler.
func (h *syncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	syncing := h.directoryService != nil && h.directoryService.Syncing()
	response.Success(w, map[string]bool{"in_progress": syncing})
}
