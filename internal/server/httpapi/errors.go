package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorMessage is the structured error body returned by every endpoint.
// Codes are stable identifiers clients can branch on; Detail is for humans.
type ErrorMessage struct {
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Instance string `json:"instance"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

// Stable error codes, grouped by module.
const (
	codeUnauthorized = "A0401"
	codeBadRequest   = "A0400"
	codeConflict     = "A0409"
	codeInternal     = "A0500"

	codeNoteBadRequest = "N0400"
	codeNoteNotFound   = "N0404"
	codeNoteUnreadable = "N0549"

	codeShareCreateFailed = "N1001"
	codeShareNoteNotFound = "N1012"
	codeShareAccessDenied = "N1401"
	codeShareNotFound     = "N1404"
	codeShareLinkNotFound = "N1411"

	codeInvalidAmount         = "invalid_amount"
	codeInvalidDate           = "invalid_date"
	codeInvalidRepeatInterval = "invalid_repeat_interval"
	codeExpenseNotFound       = "expense_not_found"
)

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, status int, code, title, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := ErrorMessage{
		Title:    title,
		Status:   status,
		Instance: r.URL.RequestURI(),
		Code:     code,
		Detail:   detail,
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response", "error", err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	h.sendError(w, r, http.StatusInternalServerError, codeInternal,
		"Internal Server Error", "The request could not be completed.")
}
