package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roomly/roomly-api/internal/dto"
	apierrors "github.com/roomly/roomly-api/internal/errors"
	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/models"
	"github.com/roomly/roomly-api/internal/services"
	"github.com/roomly/roomly-api/internal/utils"
)

// ExpenseHandler coordinates shared-payment HTTP handlers.
type ExpenseHandler struct {
	expenseService *services.ExpenseService
	authService    *services.AuthService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService *services.ExpenseService, authService *services.AuthService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		authService:    authService,
	}
}

func (h *ExpenseHandler) roomScope(c *gin.Context) (*models.User, uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, 0, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, 0, false
	}

	if user.RoomID == nil {
		apierrors.BadRequest(c, "You are not in a room")
		return nil, 0, false
	}

	return user, *user.RoomID, true
}

// ListExpenses returns the room's expenses, newest first.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	_, roomID, ok := h.roomScope(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	expenses, total, err := h.expenseService.ListExpenses(roomID, params.Page, params.Limit)
	if err != nil {
		respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": dto.ToExpenseDTOs(expenses),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateExpense records a shared payment made by the principal.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	user, roomID, ok := h.roomScope(c)
	if !ok {
		return
	}

	type CreateExpenseRequest struct {
		Description string `json:"description" binding:"required"`
		AmountCents int64  `json:"amount_cents" binding:"required"`
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	expense, err := h.expenseService.CreateExpense(services.CreateExpenseInput{
		Description: req.Description,
		AmountCents: req.AmountCents,
		RoomID:      roomID,
		PaidBy:      user.ID,
	})
	if err != nil {
		respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseDTO(*expense))
}

// DeleteExpense deletes an expense. Payer or room creator only.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	user, _, ok := h.roomScope(c)
	if !ok {
		return
	}

	expenseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(expenseID, user.ID); err != nil {
		respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Expense deleted",
	})
}

// ExpenseSummary returns per-member totals for the room.
func (h *ExpenseHandler) ExpenseSummary(c *gin.Context) {
	_, roomID, ok := h.roomScope(c)
	if !ok {
		return
	}

	totals, err := h.expenseService.Summary(roomID)
	if err != nil {
		respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"totals":  totals,
	})
}

func respondExpenseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrExpenseNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrExpensePermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrAmountNotPositive):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
