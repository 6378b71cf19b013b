package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

type ProjectHandler struct {
	Repo entity.ProjectRepositoryInterface
}

func NewProjectHandler(repo entity.ProjectRepositoryInterface) *ProjectHandler {
	return &ProjectHandler{Repo: repo}
}

type ProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ClientName  string  `json:"client_name"`
	Budget      float64 `json:"budget"`
	Status      string  `json:"status"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	})
}

func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	project := entity.NewProject(req.Name, req.ClientName, req.Budget)
	if err := applyProjectRequest(project, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := usecase.ValidateProject(project); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	if err := h.Repo.Create(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Project created successfully",
		"project": project,
	})
}

func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	project, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"project": project})
}

func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	project, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	project.Name = req.Name
	project.ClientName = req.ClientName
	project.Budget = req.Budget
	if err := applyProjectRequest(project, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := usecase.ValidateProject(project); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	if err := h.Repo.Update(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project updated successfully",
		"project": project,
	})
}

func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, entity.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func applyProjectRequest(project *entity.Project, req *ProjectRequest) error {
	project.Description = req.Description
	if req.Status != "" {
		project.Status = req.Status
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return errors.New("start_date must be a valid date (YYYY-MM-DD)")
	}
	project.StartDate = start

	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return errors.New("end_date must be a valid date (YYYY-MM-DD)")
	}
	project.EndDate = end

	return nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
