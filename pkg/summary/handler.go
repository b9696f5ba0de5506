package summary

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type MonthlyDataDTO struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

type BudgetBreakdownDTO struct {
	Total      float64              `json:"total"`
	Categories []budget.CategoryDTO `json:"categories"`
}

type SummaryDTO struct {
	CurrentBalance  float64            `json:"currentBalance"`
	TotalIncome     float64            `json:"totalIncome"`
	TotalExpenses   float64            `json:"totalExpenses"`
	MonthlyData     []MonthlyDataDTO   `json:"monthlyData"`
	BudgetBreakdown BudgetBreakdownDTO `json:"budgetBreakdown"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetSummary godoc
// @Summary Get the financial summary
// @Description Balance, totals, six month trend and budget breakdown of the current user
// @Tags Finance
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD or RFC3339), defaults to now"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Failure 401 {object} rest.ErrorResponse "Unauthorized"
// @Router /api/finance/summary [get]
// @Security BearerAuth
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting financial summary")
	asOf, err := parseAsOf(r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), asOf)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseAsOf returns the zero time for an empty value. A plain date refers to the end of that day.
func parseAsOf(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	asOf, err := transaction.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date", "must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
	}
	if !strings.Contains(value, "T") {
		asOf = asOf.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return asOf, nil
}

func ToDTO(s Summary) SummaryDTO {
	monthly := make([]MonthlyDataDTO, 0, len(s.MonthlyData))
	for _, p := range s.MonthlyData {
		monthly = append(monthly, MonthlyDataDTO{
			Month: p.Label,
			Value: p.Net.InexactFloat64(),
		})
	}
	return SummaryDTO{
		CurrentBalance: s.CurrentBalance.InexactFloat64(),
		TotalIncome:    s.TotalIncome.InexactFloat64(),
		TotalExpenses:  s.TotalExpenses.InexactFloat64(),
		MonthlyData:    monthly,
		BudgetBreakdown: BudgetBreakdownDTO{
			Total:      s.BudgetBreakdown.Total.InexactFloat64(),
			Categories: budget.CategoriesToDTO(s.BudgetBreakdown.Categories),
		},
	}
}
