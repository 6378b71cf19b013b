package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

type MeetingHandler struct {
	Repo     entity.MeetingRepositoryInterface
	Users    entity.UserRepositoryInterface
	CreateUC *usecase.CreateMeetingUseCase
}

func NewMeetingHandler(repo entity.MeetingRepositoryInterface, users entity.UserRepositoryInterface, createUC *usecase.CreateMeetingUseCase) *MeetingHandler {
	return &MeetingHandler{Repo: repo, Users: users, CreateUC: createUC}
}

func (h *MeetingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch meetings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"meetings": meetings,
		"count":    len(meetings),
	})
}

func (h *MeetingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var draft entity.MeetingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// The Google Calendar upgrade needs the acting user's tokens, so
	// resolve identity here and hand it down.
	var user *entity.User
	if userID := userIDFromRequest(r); userID != "" {
		user, _ = h.Users.FindByID(r.Context(), userID)
	}

	meeting, err := h.CreateUC.CreateMeeting(r.Context(), user, &draft)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create meeting")
		return
	}
	middleware.RecordMeetingScheduled()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Meeting scheduled successfully",
		"meeting": meeting,
	})
}

func (h *MeetingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrMeetingNotFound) {
			writeError(w, http.StatusNotFound, "Meeting not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch meeting")
		return
	}

	var req struct {
		entity.MeetingDraft
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := usecase.ValidateMeetingDraft(&req.MeetingDraft); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	meeting.Title = req.Title
	meeting.Description = req.Description
	meeting.Attendees = req.Attendees
	meeting.MeetingDate = req.MeetingDate
	meeting.MeetingTime = req.MeetingTime
	if req.Duration > 0 {
		meeting.Duration = req.Duration
	}
	if req.Platform != "" {
		meeting.Platform = req.Platform
	}
	if req.Status != "" {
		meeting.Status = req.Status
	}

	if err := h.Repo.Update(r.Context(), meeting); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update meeting")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Meeting updated successfully",
		"meeting": meeting,
	})
}

func (h *MeetingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, entity.ErrMeetingNotFound) {
			writeError(w, http.StatusNotFound, "Meeting not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete meeting")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Meeting deleted successfully"})
}
