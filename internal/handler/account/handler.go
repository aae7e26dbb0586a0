package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/interviai/backend/internal/middleware"
	"github.com/interviai/backend/internal/model/user"
	accountservice "github.com/interviai/backend/internal/service/account"
	"github.com/interviai/backend/pkg/utils"
)

// Handler exposes signup, signin, and profile routes.
type Handler struct {
	svc *accountservice.Service
}

// New creates the account handler.
func New(svc *accountservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the account routes under /user.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/create", h.handleCreate)
		r.Post("/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.svc))
			r.Get("/{userID}", h.handleGet)
			r.Patch("/{userID}", h.handleUpdate)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, token, err := h.svc.Register(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			utils.RespondError(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, user.ErrEmailRequired),
			errors.Is(err, accountservice.ErrEmailRequired),
			errors.Is(err, accountservice.ErrPasswordRequired):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "User created",
		"user":    created,
		"token":   token,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := h.svc.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, accountservice.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    u,
		"token":   token,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if middleware.UserID(r.Context()) != userID {
		utils.RespondError(w, http.StatusForbidden, "forbidden")
		return
	}

	u, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"email":         u.Email,
		"name":          u.Name,
		"resumeSummary": u.ResumeSummary,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if middleware.UserID(r.Context()) != userID {
		utils.RespondError(w, http.StatusForbidden, "forbidden")
		return
	}

	var payload struct {
		Name          *string `json:"name"`
		ResumeSummary *string `json:"resumeSummary"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), userID, payload.Name, payload.ResumeSummary); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "User updated"})
}
