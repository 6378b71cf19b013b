package usecase

import (
	"math"
	"sort"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// Default rank truncation limits.
const (
	DisplayRankLimit  = 10
	OutreachRankLimit = 5
)

type budgetBracket struct {
	Min float64
	Max float64
}

var budgetBrackets = map[string]budgetBracket{
	entity.BudgetRangeLow:        {Min: 1_000, Max: 10_000},
	entity.BudgetRangeMedium:     {Min: 10_000, Max: 50_000},
	entity.BudgetRangeHigh:       {Min: 50_000, Max: 200_000},
	entity.BudgetRangeEnterprise: {Min: 200_000, Max: math.Inf(1)},
}

// BracketForBudget maps a project budget onto the lead bracket whose
// leads should be considered first.
func BracketForBudget(budget float64) string {
	switch {
	case budget >= 200_000:
		return entity.BudgetRangeEnterprise
	case budget >= 50_000:
		return entity.BudgetRangeHigh
	case budget >= 10_000:
		return entity.BudgetRangeMedium
	default:
		return entity.BudgetRangeLow
	}
}

// CompatibilityScore rates how well a lead's declared budget bracket fits
// a project's budget, 0-100. A budget inside the bracket is a perfect
// 100; outside, the score decays with the distance to the nearest
// bracket edge relative to the project budget. Unknown brackets score 0,
// and a zero project budget scores 0 rather than dividing by it.
func CompatibilityScore(lead *entity.Lead, projectBudget float64) float64 {
	bracket, ok := budgetBrackets[lead.BudgetRange]
	if !ok {
		return 0
	}

	if projectBudget >= bracket.Min && projectBudget <= bracket.Max {
		return 100
	}

	if projectBudget == 0 {
		return 0
	}

	distance := math.Min(
		math.Abs(projectBudget-bracket.Min),
		math.Abs(projectBudget-bracket.Max),
	)

	score := 100 - (distance/projectBudget)*100
	if score < 0 {
		return 0
	}
	return score
}

// DisplayLabel is the badge shown in the leads modal.
func DisplayLabel(score float64) string {
	switch {
	case score >= 90:
		return "Perfect Match"
	case score >= 70:
		return "Good Match"
	case score >= 50:
		return "Fair Match"
	default:
		return "Potential"
	}
}

// EmailLabel is the wording used inside invite emails. Same score, same
// cut points as the display mapping except the middle bands.
func EmailLabel(score float64) string {
	switch {
	case score >= 90:
		return "Perfect Match"
	case score >= 70:
		return "Great Match"
	case score >= 50:
		return "Good Match"
	default:
		return "Potential Match"
	}
}

// RankedLead pairs a lead with its score for a given project.
type RankedLead struct {
	Lead  *entity.Lead
	Score float64
}

// CompatibilityResult is the wire shape for ranked leads.
type CompatibilityResult struct {
	LeadID string  `json:"lead_id"`
	Score  float64 `json:"score"`
	Label  string  `json:"label"`
}

// RankLeads orders leads by descending score, breaking ties by
// descending salary_max (missing salary counts as zero), and truncates
// to limit. The sort is stable, so equal leads keep their input order.
// Pure: same input, same output.
func RankLeads(leads []*entity.Lead, project *entity.Project, limit int) []RankedLead {
	ranked := make([]RankedLead, 0, len(leads))
	for _, lead := range leads {
		ranked = append(ranked, RankedLead{
			Lead:  lead,
			Score: CompatibilityScore(lead, project.Budget),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return maxSalary(ranked[i].Lead) > maxSalary(ranked[j].Lead)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Rank is RankLeads projected onto the wire shape.
func Rank(leads []*entity.Lead, project *entity.Project, limit int) []CompatibilityResult {
	ranked := RankLeads(leads, project, limit)

	results := make([]CompatibilityResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, CompatibilityResult{
			LeadID: r.Lead.ID,
			Score:  r.Score,
			Label:  DisplayLabel(r.Score),
		})
	}
	return results
}

func maxSalary(lead *entity.Lead) float64 {
	if lead.SalaryMax == nil {
		return 0
	}
	return *lead.SalaryMax
}
