// Package httpapi exposes the service layer as a REST JSON API. Handlers
// decode requests, invoke services, and translate sentinel errors into
// structured error bodies; no storage or codec errors escape raw.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gauravjot/my-it-tools/internal/logging"
	"github.com/gauravjot/my-it-tools/internal/server/config"
	"github.com/gauravjot/my-it-tools/internal/server/services"
)

type Handler struct {
	logger      logging.Logger
	jwtSecret   []byte
	users       *services.UserService
	notes       *services.NoteService
	shares      *services.ShareService
	tracker     *services.TrackerService
	attachments *services.AttachmentService
}

func NewHandler(logger logging.Logger, cfg *config.Config,
	users *services.UserService, notes *services.NoteService, shares *services.ShareService,
	tracker *services.TrackerService, attachments *services.AttachmentService) *Handler {
	return &Handler{
		logger:      logger,
		jwtSecret:   []byte(cfg.SecretKey),
		users:       users,
		notes:       notes,
		shares:      shares,
		tracker:     tracker,
		attachments: attachments,
	}
}

// RegisterRoutes wires every endpoint onto mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /api/user/register", h.handleRegister)
	mux.HandleFunc("POST /api/user/login", h.handleLogin)
	mux.HandleFunc("POST /api/user/refresh", h.handleRefresh)
	mux.HandleFunc("GET /api/user/me", h.requireAuth(h.handleMe))

	mux.HandleFunc("GET /api/notes/all", h.requireAuth(h.handleListNotes))
	mux.HandleFunc("POST /api/notes/create", h.requireAuth(h.handleCreateNote))
	mux.HandleFunc("GET /api/notes/{id}", h.requireAuth(h.handleReadNote))
	mux.HandleFunc("PUT /api/notes/{id}", h.requireAuth(h.handleUpdateNoteContent))
	mux.HandleFunc("DELETE /api/notes/{id}", h.requireAuth(h.handleDeleteNote))
	mux.HandleFunc("PUT /api/notes/{id}/edit/title", h.requireAuth(h.handleUpdateNoteTitle))

	mux.HandleFunc("POST /api/notes/share/{id}", h.requireAuth(h.handleCreateShareLink))
	mux.HandleFunc("GET /api/notes/share/links/{id}", h.requireAuth(h.handleListShareLinks))
	mux.HandleFunc("PUT /api/notes/share/links/disable", h.requireAuth(h.handleDisableShareLink))
	mux.HandleFunc("POST /api/notes/shared/{token}", h.handleResolveShareLink)

	mux.HandleFunc("POST /api/attachments/{note}", h.requireAuth(h.handleCreateAttachment))
	mux.HandleFunc("GET /api/attachments/{note}", h.requireAuth(h.handleListAttachments))
	mux.HandleFunc("POST /api/attachments/{note}/{file}/uploaded", h.requireAuth(h.handleMarkUploaded))
	mux.HandleFunc("GET /api/attachments/{note}/{file}/url", h.requireAuth(h.handleAttachmentURL))
	mux.HandleFunc("DELETE /api/attachments/{note}/{file}", h.requireAuth(h.handleDeleteAttachment))

	mux.HandleFunc("POST /api/tracker/add_income", h.requireAuth(h.handleAddIncome))
	mux.HandleFunc("GET /api/tracker/get_incomes/{start}/{end}", h.requireAuth(h.handleListIncomes))
	mux.HandleFunc("POST /api/tracker/add_expense", h.requireAuth(h.handleAddExpense))
	mux.HandleFunc("GET /api/tracker/get_expenses/{start}/{end}", h.requireAuth(h.handleListExpenses))
	mux.HandleFunc("GET /api/tracker/get_expense_tags", h.requireAuth(h.handleListExpenseTags))
	mux.HandleFunc("PUT /api/tracker/expense/{id}", h.requireAuth(h.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/tracker/expense/{id}", h.requireAuth(h.handleDeleteExpense))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.sendResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) sendResponse(w http.ResponseWriter, r *http.Request, status int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if resp == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error(r.Context(), "failed to encode response", "error", err)
	}
}

// decodeBody parses the request body into dst. It reports success; on
// failure the 400 response has already been written.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.sendError(w, r, http.StatusBadRequest, codeBadRequest,
			"Invalid Request", "The request body is not valid JSON.")
		return false
	}
	return true
}
