package budget

import (
	"encoding/json"
	"net/http"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

type BudgetDTO struct {
	Month      int           `json:"month"`
	Year       int           `json:"year"`
	Total      float64       `json:"total"`
	Categories []CategoryDTO `json:"categories"`
}

// UpdateTotalRequest accepts the total as a JSON number or a numeric string.
type UpdateTotalRequest struct {
	Total *decimal.Decimal `json:"total"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// UpdateTotal godoc
// @Summary Set the budget total
// @Description Set the total of the current month's budget, creating the budget when needed
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body UpdateTotalRequest true "New total"
// @Success 200 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse "Validation failed"
// @Failure 401 {object} rest.ErrorResponse "Unauthorized"
// @Router /api/finance/budget [put]
// @Security BearerAuth
func (h *Handler) UpdateTotal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating budget total")
	var req UpdateTotalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperrors.NewValidationError("total", "must be a number"))
		return
	}
	if req.Total == nil {
		rest.WriteError(w, apperrors.NewValidationError("total", "is required"))
		return
	}

	updated, err := h.service.UpdateTotal(r.Context(), h.clock.Now().UTC(), *req.Total)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ToDTO(b Budget) BudgetDTO {
	return BudgetDTO{
		Month:      b.Month,
		Year:       b.Year,
		Total:      b.Total.InexactFloat64(),
		Categories: CategoriesToDTO(b.Categories),
	}
}

func CategoriesToDTO(categories []Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{
			Name:   c.Name,
			Amount: c.Amount.InexactFloat64(),
			Color:  c.Color,
		})
	}
	return dtos
}
