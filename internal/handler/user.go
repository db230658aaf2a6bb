package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fastopp/fastopp/internal/repository"
	"github.com/fastopp/fastopp/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	audit       *service.AuditService
}

func NewUserHandler(userService *service.UserService, audit *service.AuditService) *UserHandler {
	return &UserHandler{userService: userService, audit: audit}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All()
	if err != nil {
		slog.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type createUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := h.userService.Create(email, req.Password, req.IsStaff, req.IsSuperuser)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		if errors.Is(err, service.ErrPasswordTooShort) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to create user", "error", err, "email", email)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	h.audit.Record(actorID(r), "create_user", "user", user.ID, user.Email)
	writeJSON(w, http.StatusCreated, user)
}

type updateUserRequest struct {
	IsActive    bool `json:"is_active"`
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("failed to load user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	var req updateUserRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user.IsActive = req.IsActive
	user.IsStaff = req.IsStaff
	user.IsSuperuser = req.IsSuperuser

	err = h.userService.Update(user)
	if err != nil {
		slog.Error("failed to update user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	h.audit.Record(actorID(r), "update_user", "user", user.ID, "")
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.userService.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("failed to delete user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	h.audit.Record(actorID(r), "delete_user", "user", id, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
