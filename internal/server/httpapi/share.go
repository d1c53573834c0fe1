package httpapi

import (
	"errors"
	"net/http"

	"github.com/gauravjot/my-it-tools/internal/common"
)

type createShareRequest struct {
	Title     string `json:"title"`
	Password  string `json:"password"`
	Anonymous *bool  `json:"anonymous"`
	Active    *bool  `json:"active"`
}

func (h *Handler) handleCreateShareLink(w http.ResponseWriter, r *http.Request, userID string) {
	var req createShareRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	// Sharing is anonymous and the link is live unless the owner says
	// otherwise.
	anonymous := true
	if req.Anonymous != nil {
		anonymous = *req.Anonymous
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := h.shares.CreateShareLink(r.Context(), userID, r.PathValue("id"),
		req.Title, req.Password, anonymous, active)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			h.sendError(w, r, http.StatusNotFound, codeShareNoteNotFound,
				"Note not found", "This note cannot be retrieved.")
		case errors.Is(err, common.ErrorInvalidInput):
			h.sendError(w, r, http.StatusBadRequest, codeShareCreateFailed,
				"Failed to create share link", "Failed to create share link.")
		default:
			h.internalError(w, r, err)
		}
		return
	}
	h.sendResponse(w, r, http.StatusCreated, created)
}

func (h *Handler) handleListShareLinks(w http.ResponseWriter, r *http.Request, userID string) {
	links, err := h.shares.ListShareLinks(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, links)
}

type disableShareRequest struct {
	ID string `json:"id"`
}

func (h *Handler) handleDisableShareLink(w http.ResponseWriter, r *http.Request, userID string) {
	var req disableShareRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.shares.DisableShareLink(r.Context(), userID, req.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			h.sendError(w, r, http.StatusNotFound, codeShareLinkNotFound,
				"No Share Link found", "The link could not be found.")
			return
		}
		h.internalError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusNoContent, nil)
}

type resolveShareRequest struct {
	Password string `json:"password"`
}

// handleResolveShareLink is the only unauthenticated note endpoint. Every
// failure mode is deliberately uninformative: unknown and disabled tokens
// are the same 404, missing and wrong passwords the same 401.
func (h *Handler) handleResolveShareLink(w http.ResponseWriter, r *http.Request) {
	var req resolveShareRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	view, err := h.shares.ResolveShareLink(r.Context(), r.PathValue("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			h.sendError(w, r, http.StatusNotFound, codeShareNotFound,
				"Failed reading note", "This note cannot be retrieved.")
		case errors.Is(err, common.ErrorIncorrectPassword):
			h.sendError(w, r, http.StatusUnauthorized, codeShareAccessDenied,
				"Access Denied", "A valid password is required.")
		case errors.Is(err, common.ErrorUnreadable):
			h.sendError(w, r, http.StatusInternalServerError, codeNoteUnreadable,
				"Failed reading note", "This note cannot be retrieved.")
		default:
			h.internalError(w, r, err)
		}
		return
	}
	h.sendResponse(w, r, http.StatusOK, view)
}
