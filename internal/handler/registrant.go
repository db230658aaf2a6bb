package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fastopp/fastopp/internal/ctxkeys"
	"github.com/fastopp/fastopp/internal/model"
	"github.com/fastopp/fastopp/internal/repository"
	"github.com/fastopp/fastopp/internal/service"
	"github.com/fastopp/fastopp/internal/validation"
)

// maxPhotoUpload bounds the multipart form memory for photo uploads.
const maxPhotoUpload = 10 << 20 // 10MB

type RegistrantHandler struct {
	registrantService *service.RegistrantService
}

func NewRegistrantHandler(registrantService *service.RegistrantService) *RegistrantHandler {
	return &RegistrantHandler{registrantService: registrantService}
}

// List returns all registrants with full detail, for the staff table.
func (h *RegistrantHandler) List(w http.ResponseWriter, r *http.Request) {
	registrants, err := h.registrantService.All()
	if err != nil {
		slog.Error("failed to list registrants", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list registrants")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"registrants": registrants})
}

// attendee is the public shape used by the marketing demo page.
type attendee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	WebinarTitle string    `json:"webinar_title"`
	WebinarDate  time.Time `json:"webinar_date"`
	Status       string    `json:"status"`
	Group        *string   `json:"group,omitempty"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// Attendees returns the public attendee list (no email addresses).
func (h *RegistrantHandler) Attendees(w http.ResponseWriter, r *http.Request) {
	registrants, err := h.registrantService.All()
	if err != nil {
		slog.Error("failed to list attendees", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list attendees")
		return
	}

	attendees := make([]attendee, 0, len(registrants))
	for _, reg := range registrants {
		attendees = append(attendees, attendee{
			ID:           reg.ID,
			Name:         reg.Name,
			Company:      reg.Company,
			WebinarTitle: reg.WebinarTitle,
			WebinarDate:  reg.WebinarDate,
			Status:       reg.Status,
			Group:        reg.GroupName,
			PhotoURL:     reg.PhotoURL,
			Notes:        reg.Notes,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"attendees": attendees})
}

// UploadPhoto accepts a multipart "photo" field and stores it for the
// registrant in the path.
func (h *RegistrantHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	registrantID := r.PathValue("id")

	err := r.ParseMultipartForm(maxPhotoUpload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read photo")
		return
	}

	err = validation.ValidatePhoto(content, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusOK, service.Result{Success: false, Message: err.Error()})
		return
	}

	result := h.registrantService.UploadPhoto(r.Context(), actorID(r), registrantID, content, header.Filename)
	writeJSON(w, http.StatusOK, result)
}

func (h *RegistrantHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	result := h.registrantService.DeletePhoto(r.Context(), actorID(r), r.PathValue("id"))
	writeJSON(w, http.StatusOK, result)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *RegistrantHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.registrantService.UpdateNotes(actorID(r), r.PathValue("id"), req.Notes)
	writeJSON(w, http.StatusOK, result)
}

type registrantRequest struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Company      string    `json:"company"`
	WebinarTitle string    `json:"webinar_title"`
	WebinarDate  time.Time `json:"webinar_date"`
	Status       string    `json:"status"`
	Group        *string   `json:"group"`
}

func (h *RegistrantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registrantRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.WebinarTitle == "" {
		writeError(w, http.StatusBadRequest, "name, email and webinar_title are required")
		return
	}

	registrant := &model.WebinarRegistrant{
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		WebinarTitle: req.WebinarTitle,
		WebinarDate:  req.WebinarDate,
		Status:       req.Status,
		GroupName:    req.Group,
	}

	err = h.registrantService.Create(registrant)
	if err != nil {
		slog.Error("failed to create registrant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create registrant")
		return
	}

	writeJSON(w, http.StatusCreated, registrant)
}

func (h *RegistrantHandler) Update(w http.ResponseWriter, r *http.Request) {
	registrant, err := h.registrantService.ByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRegistrantNotFound) {
			writeError(w, http.StatusNotFound, "registrant not found")
			return
		}
		slog.Error("failed to load registrant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update registrant")
		return
	}

	var req registrantRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	registrant.Name = req.Name
	registrant.Email = req.Email
	registrant.Company = req.Company
	registrant.WebinarTitle = req.WebinarTitle
	registrant.WebinarDate = req.WebinarDate
	registrant.Status = req.Status
	registrant.GroupName = req.Group

	err = h.registrantService.Update(registrant)
	if err != nil {
		slog.Error("failed to update registrant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update registrant")
		return
	}

	writeJSON(w, http.StatusOK, registrant)
}

func (h *RegistrantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.registrantService.Delete(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRegistrantNotFound) {
			writeError(w, http.StatusNotFound, "registrant not found")
			return
		}
		slog.Error("failed to delete registrant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete registrant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "registrant deleted"})
}

// actorID returns the session user's ID for audit records, or nil.
func actorID(r *http.Request) *string {
	user := ctxkeys.User(r.Context())
	if user == nil {
		return nil
	}
	return &user.ID
}
