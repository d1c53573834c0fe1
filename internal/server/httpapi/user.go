package httpapi

import (
	"errors"
	"net/http"

	"github.com/gauravjot/my-it-tools/internal/common"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	User userResponse `json:"user"`
	tokenResponse
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			h.sendError(w, r, http.StatusBadRequest, codeBadRequest,
				"Invalid Request", "Email and password are required.")
		case errors.Is(err, common.ErrorAlreadyExists):
			h.sendError(w, r, http.StatusConflict, codeConflict,
				"Registration Failed", "An account with this email already exists.")
		default:
			h.internalError(w, r, err)
		}
		return
	}
	h.sendResponse(w, r, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.sendError(w, r, http.StatusUnauthorized, codeUnauthorized,
				"Login Failed", "Email or password is incorrect.")
			return
		}
		h.internalError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, loginResponse{
		User:          userResponse{ID: user.ID, Email: user.Email, Name: user.Name},
		tokenResponse: tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			h.sendError(w, r, http.StatusUnauthorized, codeUnauthorized,
				"Unauthorized", "The refresh token is not valid.")
			return
		}
		h.internalError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.users.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			h.sendError(w, r, http.StatusUnauthorized, codeUnauthorized,
				"Unauthorized", "The account no longer exists.")
			return
		}
		h.internalError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, userResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}
