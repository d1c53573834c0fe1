package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/server/models"
	"github.com/gauravjot/my-it-tools/internal/server/services"
)

type incomeRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

type incomeResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func incomeToResponse(i *models.Income) incomeResponse {
	return incomeResponse{
		ID:     i.ID,
		Name:   i.Name,
		Amount: i.Amount,
		Date:   i.Date.Format("2006-01-02"),
	}
}

func (h *Handler) handleAddIncome(w http.ResponseWriter, r *http.Request, userID string) {
	var req incomeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	income, err := h.tracker.AddIncome(r.Context(), userID, req.Name, req.Amount, req.Date)
	if err != nil {
		h.trackerError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusCreated, incomeToResponse(income))
}

func (h *Handler) handleListIncomes(w http.ResponseWriter, r *http.Request, userID string) {
	incomes, err := h.tracker.ListIncomes(r.Context(), userID, r.PathValue("start"), r.PathValue("end"))
	if err != nil {
		h.trackerError(w, r, err)
		return
	}
	result := make([]incomeResponse, 0, len(incomes))
	for _, i := range incomes {
		result = append(result, incomeToResponse(i))
	}
	h.sendResponse(w, r, http.StatusOK, result)
}

type expenseRequest struct {
	Name           string   `json:"name"`
	Amount         string   `json:"amount"`
	Date           string   `json:"date"`
	Repeat         bool     `json:"repeat"`
	RepeatInterval string   `json:"repeatInterval"`
	Tags           []string `json:"tags"`
}

type expenseResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Amount         float64  `json:"amount"`
	Date           string   `json:"date"`
	Repeat         bool     `json:"repeat"`
	RepeatInterval string   `json:"repeatInterval"`
	Tags           []string `json:"tags"`
}

func expenseToResponse(e *models.Expense) expenseResponse {
	tags := make([]string, 0, len(e.Tags))
	for _, tag := range e.Tags {
		tags = append(tags, tag.Name)
	}
	return expenseResponse{
		ID:             e.ID,
		Name:           e.Name,
		Amount:         e.Amount,
		Date:           e.Date.Format("2006-01-02"),
		Repeat:         e.Repeat,
		RepeatInterval: e.RepeatInterval,
		Tags:           tags,
	}
}

func (h *Handler) handleAddExpense(w http.ResponseWriter, r *http.Request, userID string) {
	var req expenseRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	expense, err := h.tracker.AddExpense(r.Context(), userID, services.ExpenseInput{
		Name: req.Name, Amount: req.Amount, Date: req.Date,
		Repeat: req.Repeat, RepeatInterval: req.RepeatInterval, Tags: req.Tags,
	})
	if err != nil {
		h.trackerError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusCreated, expenseToResponse(expense))
}

func (h *Handler) handleListExpenses(w http.ResponseWriter, r *http.Request, userID string) {
	expenses, err := h.tracker.ListExpenses(r.Context(), userID, r.PathValue("start"), r.PathValue("end"))
	if err != nil {
		h.trackerError(w, r, err)
		return
	}
	result := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, expenseToResponse(e))
	}
	h.sendResponse(w, r, http.StatusOK, result)
}

func (h *Handler) handleUpdateExpense(w http.ResponseWriter, r *http.Request, userID string) {
	id, ok := h.expenseID(w, r)
	if !ok {
		return
	}
	var req expenseRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	expense, err := h.tracker.UpdateExpense(r.Context(), userID, id, services.ExpenseInput{
		Name: req.Name, Amount: req.Amount, Date: req.Date,
		Repeat: req.Repeat, RepeatInterval: req.RepeatInterval, Tags: req.Tags,
	})
	if err != nil {
		h.trackerError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusOK, expenseToResponse(expense))
}

func (h *Handler) handleDeleteExpense(w http.ResponseWriter, r *http.Request, userID string) {
	id, ok := h.expenseID(w, r)
	if !ok {
		return
	}
	if err := h.tracker.DeleteExpense(r.Context(), userID, id); err != nil {
		h.trackerError(w, r, err)
		return
	}
	h.sendResponse(w, r, http.StatusNoContent, nil)
}

func (h *Handler) handleListExpenseTags(w http.ResponseWriter, r *http.Request, userID string) {
	tags, err := h.tracker.ListTags(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	h.sendResponse(w, r, http.StatusOK, map[string]any{"tags": names})
}

func (h *Handler) expenseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, codeExpenseNotFound,
			"Expense not found", "The expense could not be found.")
		return 0, false
	}
	return id, true
}

// trackerError maps validation sentinels to the tracker's field-level codes.
func (h *Handler) trackerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		h.sendError(w, r, http.StatusBadRequest, codeInvalidAmount,
			"Invalid Amount", "The amount is not a valid number.")
	case errors.Is(err, services.ErrInvalidDate):
		h.sendError(w, r, http.StatusBadRequest, codeInvalidDate,
			"Invalid Date", "The date must be in YYYY-MM-DD format.")
	case errors.Is(err, services.ErrInvalidRepeatInterval):
		h.sendError(w, r, http.StatusBadRequest, codeInvalidRepeatInterval,
			"Invalid Repeat Interval", "The repeat interval must be daily, weekly, monthly or yearly.")
	case errors.Is(err, common.ErrorNotFound):
		h.sendError(w, r, http.StatusNotFound, codeExpenseNotFound,
			"Expense not found", "The expense could not be found.")
	default:
		h.internalError(w, r, err)
	}
}
