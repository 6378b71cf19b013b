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

// OutreachHandler exposes the compatibility ranking and the bulk
// invite-and-schedule workflow for a project.
type OutreachHandler struct {
	Leads    entity.LeadRepositoryInterface
	Projects entity.ProjectRepositoryInterface
	Users    entity.UserRepositoryInterface
	Outreach *usecase.OutreachUseCase
}

func NewOutreachHandler(
	leads entity.LeadRepositoryInterface,
	projects entity.ProjectRepositoryInterface,
	users entity.UserRepositoryInterface,
	outreach *usecase.OutreachUseCase,
) *OutreachHandler {
	return &OutreachHandler{
		Leads:    leads,
		Projects: projects,
		Users:    users,
		Outreach: outreach,
	}
}

type rankedLeadResponse struct {
	Lead  *entity.Lead `json:"lead"`
	Score float64      `json:"score"`
	Label string       `json:"label"`
}

// HandleRankedLeads returns the top leads for a project, best fit first.
func (h *OutreachHandler) HandleRankedLeads(w http.ResponseWriter, r *http.Request) {
	project, err := h.Projects.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	ranked, err := h.rankForProject(r, project, usecase.DisplayRankLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}

	results := make([]rankedLeadResponse, 0, len(ranked))
	for _, rl := range ranked {
		results = append(results, rankedLeadResponse{
			Lead:  rl.Lead,
			Score: rl.Score,
			Label: usecase.DisplayLabel(rl.Score),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project": project,
		"leads":   results,
		"count":   len(results),
	})
}

// HandleRunBatch invites the top-ranked leads and auto-schedules their
// follow-up meetings. The acting user must be known: their SMTP account
// and Google connection drive the sends.
func (h *OutreachHandler) HandleRunBatch(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := h.Users.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	project, err := h.Projects.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	limit := usecase.OutreachRankLimit
	if r.Body != nil {
		var req struct {
			Limit int `json:"limit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Limit > 0 {
			limit = req.Limit
		}
	}

	ranked, err := h.rankForProject(r, project, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}
	if len(ranked) == 0 {
		writeError(w, http.StatusNotFound, "No suitable leads for this project")
		return
	}

	result := h.Outreach.RunBatch(r.Context(), user, ranked, project, limit)

	middleware.RecordInvitesSent(result.SuccessCount)
	for _, failure := range result.Failures {
		middleware.RecordOutreachError(failure.Stage)
	}
	for range result.ScheduledLeadIDs {
		middleware.RecordMeetingScheduled()
	}

	writeJSON(w, http.StatusOK, result)
}

// rankForProject pulls the leads in the project's budget bracket and
// orders them by compatibility.
func (h *OutreachHandler) rankForProject(r *http.Request, project *entity.Project, limit int) ([]usecase.RankedLead, error) {
	filter := entity.LeadFilter{BudgetRange: usecase.BracketForBudget(project.Budget)}
	leads, err := h.Leads.List(r.Context(), filter)
	if err != nil {
		return nil, err
	}
	return usecase.RankLeads(leads, project, limit), nil
}
