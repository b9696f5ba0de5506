package transaction

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/rest"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id          int     `json:"id"`
	Account     string  `json:"account"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}

// CreateTransactionRequest accepts the amount as a JSON number or a numeric string.
// "transaction" is accepted as an alias of "description".
type CreateTransactionRequest struct {
	Account     string          `json:"account"`
	Description string          `json:"description"`
	Transaction string          `json:"transaction"`
	Category    string          `json:"category"`
	Amount      json.RawMessage `json:"amount"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Add a transaction
// @Description Record an income or expense transaction for the current user
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body CreateTransactionRequest true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Validation failed"
// @Failure 401 {object} rest.ErrorResponse "Unauthorized"
// @Router /api/finance/transactions [post]
// @Security BearerAuth
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding transaction")
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperrors.NewValidationError("body", "invalid JSON: "+err.Error()))
		return
	}

	created, err := h.service.AddTransaction(r.Context(), req.toNewTransaction())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Recent godoc
// @Summary List recent transactions
// @Description Most recent transactions of the current user, newest first
// @Tags Transaction
// @Produce json
// @Param limit query int false "Maximum number of transactions (default 10, max 100)"
// @Success 200 {array} TransactionDTO
// @Failure 401 {object} rest.ErrorResponse "Unauthorized"
// @Router /api/finance/transactions/recent [get]
// @Security BearerAuth
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing recent transactions")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Debugf("ignoring invalid limit %q", raw)
		} else {
			limit = parsed
		}
	}

	transactions, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, ToDTO(t))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (req CreateTransactionRequest) toNewTransaction() NewTransaction {
	description := req.Description
	if description == "" {
		description = req.Transaction
	}
	return NewTransaction{
		Account:     req.Account,
		Description: description,
		Category:    req.Category,
		Amount:      rawAmount(req.Amount),
		Date:        req.Date,
		Kind:        req.Type,
	}
}

func rawAmount(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	}
	return string(raw)
}

func ToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		Id:          t.Id,
		Account:     t.Account,
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount.InexactFloat64(),
		Date:        t.OccurredAt.Format(time.RFC3339),
		Type:        string(t.Kind),
	}
}
