package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gauravjot/my-it-tools/internal/common"
)

type noteRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request, userID string) {
	var req noteRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	note, err := h.notes.CreateNote(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		h.noteError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusCreated, note)
}

func (h *Handler) handleListNotes(w http.ResponseWriter, r *http.Request, userID string) {
	notes, err := h.notes.ListNotes(r.Context(), userID)
	if err != nil {
		h.noteError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, map[string]any{"notes": notes})
}

func (h *Handler) handleReadNote(w http.ResponseWriter, r *http.Request, userID string) {
	note, err := h.notes.ReadNote(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.noteError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, note)
}

func (h *Handler) handleUpdateNoteContent(w http.ResponseWriter, r *http.Request, userID string) {
	var req noteRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	note, err := h.notes.UpdateNoteContent(r.Context(), userID, r.PathValue("id"), req.Content)
	if err != nil {
		h.noteError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, note)
}

func (h *Handler) handleUpdateNoteTitle(w http.ResponseWriter, r *http.Request, userID string) {
	var req noteRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.notes.UpdateNoteTitle(r.Context(), userID, r.PathValue("id"), req.Title); err != nil {
		h.noteError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusNoContent, nil)
}

func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.notes.DeleteNote(r.Context(), userID, r.PathValue("id")); err != nil {
		h.noteError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusNoContent, nil)
}

// noteError translates note service sentinels into the module's error codes.
func (h *Handler) noteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.sendError(w, r, http.StatusNotFound, codeNoteNotFound,
			"No note found", "This note does not exist.")
	case errors.Is(err, common.ErrorInvalidInput):
		h.sendError(w, r, http.StatusBadRequest, codeNoteBadRequest,
			"Invalid Request", "The note payload is not valid.")
	case errors.Is(err, common.ErrorUnreadable):
		h.sendError(w, r, http.StatusInternalServerError, codeNoteUnreadable,
			"Failed reading note", "This note cannot be retrieved.")
	default:
		h.internalError(w, r, err)
	}
}
