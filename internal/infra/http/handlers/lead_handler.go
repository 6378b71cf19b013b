package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

type LeadHandler struct {
	Repo        entity.LeadRepositoryInterface
	rateLimiter *RateLimiter
}

func NewLeadHandler(repo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{
		Repo:        repo,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type LeadRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	Category    string   `json:"category"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	BudgetRange string   `json:"budget_range"`
	Industry    string   `json:"industry"`
	Location    string   `json:"location"`
	Notes       string   `json:"notes"`
	Status      string   `json:"status"`
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Repo.List(r.Context(), entity.LeadFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leads": leads,
		"count": len(leads),
	})
}

// HandleFilter narrows the listing by the query parameters the leads
// screen sends.
func (h *LeadHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := entity.LeadFilter{
		BudgetRange: q.Get("budget_range"),
		Category:    q.Get("category"),
		Industry:    q.Get("industry"),
	}
	if v := q.Get("min_salary"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinSalary = &parsed
		}
	}
	if v := q.Get("max_salary"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxSalary = &parsed
		}
	}

	leads, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch filtered leads")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leads": leads,
		"count": len(leads),
	})
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var req LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead := entity.NewLead(req.Name, req.Email)
	applyLeadRequest(lead, &req)

	if errs := usecase.ValidateLead(lead); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	if err := h.Repo.Create(r.Context(), lead); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create lead")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Lead created successfully",
		"lead":    lead,
	})
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"lead": lead})
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	var req LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead.Name = req.Name
	lead.Email = req.Email
	applyLeadRequest(lead, &req)

	if errs := usecase.ValidateLead(lead); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	if err := h.Repo.Update(r.Context(), lead); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Lead updated successfully",
		"lead":    lead,
	})
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Lead deleted successfully"})
}

func applyLeadRequest(lead *entity.Lead, req *LeadRequest) {
	lead.Phone = req.Phone
	lead.Company = req.Company
	lead.Industry = req.Industry
	lead.Location = req.Location
	lead.Notes = req.Notes
	lead.SalaryMin = req.SalaryMin
	lead.SalaryMax = req.SalaryMax
	if req.Category != "" {
		lead.Category = req.Category
	}
	if req.BudgetRange != "" {
		lead.BudgetRange = req.BudgetRange
	}
	if req.Status != "" {
		lead.Status = req.Status
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
