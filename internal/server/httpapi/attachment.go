package httpapi

import (
	"errors"
	"net/http"

	"github.com/gauravjot/my-it-tools/internal/common"
)

type createAttachmentRequest struct {
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

func (h *Handler) handleCreateAttachment(w http.ResponseWriter, r *http.Request, userID string) {
	var req createAttachmentRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	upload, err := h.attachments.CreateAttachment(r.Context(), userID, r.PathValue("note"), req.FileName, req.Size)
	if err != nil {
		h.attachmentError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusCreated, upload)
}

type attachmentResponse struct {
	FileName     string `json:"fileName"`
	Size         int64  `json:"size"`
	UploadStatus string `json:"uploadStatus"`
}

func (h *Handler) handleListAttachments(w http.ResponseWriter, r *http.Request, userID string) {
	items, err := h.attachments.ListAttachments(r.Context(), userID, r.PathValue("note"))
	if err != nil {
		h.attachmentError(w, r, err)
		return
	}
	result := make([]attachmentResponse, 0, len(items))
	for _, a := range items {
		result = append(result, attachmentResponse{
			FileName: a.FileName, Size: a.Size, UploadStatus: a.UploadStatus,
		})
	}
	h.sendResponse(w, r, http.StatusOK, result)
}

func (h *Handler) handleMarkUploaded(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.attachments.MarkUploaded(r.Context(), userID, r.PathValue("note"), r.PathValue("file")); err != nil {
		h.attachmentError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusNoContent, nil)
}

func (h *Handler) handleAttachmentURL(w http.ResponseWriter, r *http.Request, userID string) {
	url, err := h.attachments.AttachmentURL(r.Context(), userID, r.PathValue("note"), r.PathValue("file"))
	if err != nil {
		h.attachmentError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) handleDeleteAttachment(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.attachments.DeleteAttachment(r.Context(), userID, r.PathValue("note"), r.PathValue("file")); err != nil {
		h.attachmentError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusNoContent, nil)
}

func (h *Handler) attachmentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.sendError(w, r, http.StatusNotFound, codeNoteNotFound,
			"Not found", "The note or attachment does not exist.")
	case errors.Is(err, common.ErrorAlreadyExists):
		h.sendError(w, r, http.StatusConflict, codeConflict,
			"Duplicate attachment", "An attachment with this file name already exists.")
	case errors.Is(err, common.ErrorInvalidInput):
		h.sendError(w, r, http.StatusBadRequest, codeBadRequest,
			"Invalid Request", "A file name is required.")
	default:
		h.internalError(w, r, err)
	}
}
