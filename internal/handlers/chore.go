package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomly/roomly-api/internal/constants"
	"github.com/roomly/roomly-api/internal/dto"
	apierrors "github.com/roomly/roomly-api/internal/errors"
	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/models"
	"github.com/roomly/roomly-api/internal/services"
	"github.com/roomly/roomly-api/internal/utils"
)

// ChoreHandler coordinates chore HTTP handlers.
type ChoreHandler struct {
	choreService *services.ChoreService
	authService  *services.AuthService
}

// NewChoreHandler creates a new ChoreHandler.
func NewChoreHandler(choreService *services.ChoreService, authService *services.AuthService) *ChoreHandler {
	return &ChoreHandler{
		choreService: choreService,
		authService:  authService,
	}
}

// roomScope resolves the principal and their room. Chore operations require
// room membership.
func (h *ChoreHandler) roomScope(c *gin.Context) (*models.User, uint64, bool) {
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

// choreFromContext returns the chore loaded by RequireChoreAccess.
func choreFromContext(c *gin.Context) (models.Chore, bool) {
	choreInterface, exists := c.Get(constants.ContextKeyChore)
	if !exists {
		apierrors.InternalError(c, "Chore not found in context")
		return models.Chore{}, false
	}

	chore, ok := choreInterface.(models.Chore)
	if !ok {
		apierrors.InternalError(c, "Invalid chore data")
		return models.Chore{}, false
	}

	return chore, true
}

// ListChores returns the chores in the principal's room.
// Supports status, assigned_to_me, due_today and sort_by_due_date filters.
func (h *ChoreHandler) ListChores(c *gin.Context) {
	user, roomID, ok := h.roomScope(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListChoresInput{
		RoomID:        roomID,
		UserID:        user.ID,
		AssignedToMe:  c.Query("assigned_to_me") == "true",
		DueToday:      c.Query("due_today") == "true",
		SortByDueDate: c.Query("sort_by_due_date") == "true",
		Page:          params.Page,
		PageSize:      params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ChoreStatus(statusStr)
		if status != models.ChoreStatusTodo && status != models.ChoreStatusDone {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}

	chores, total, err := h.choreService.ListChores(input)
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chores": dto.ToChoreDTOs(chores),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetChore returns a specific chore.
// The chore is already loaded with relations by RequireChoreAccess.
func (h *ChoreHandler) GetChore(c *gin.Context) {
	chore, ok := choreFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(chore))
}

// CreateChore creates a new chore in the principal's room.
func (h *ChoreHandler) CreateChore(c *gin.Context) {
	user, roomID, ok := h.roomScope(c)
	if !ok {
		return
	}

	type CreateChoreRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chore, err := h.choreService.CreateChore(services.CreateChoreInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		RoomID:      roomID,
		CreatorID:   user.ID,
	})
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChoreDTO(*chore))
}

// UpdateChore updates an existing chore.
func (h *ChoreHandler) UpdateChore(c *gin.Context) {
	chore, ok := choreFromContext(c)
	if !ok {
		return
	}

	type UpdateChoreRequest struct {
		Title        *string             `json:"title"`
		Description  *string             `json:"description"`
		Status       *models.ChoreStatus `json:"status"`
		DueDate      *time.Time          `json:"due_date"`
		ClearDueDate bool                `json:"clear_due_date"`
	}

	var req UpdateChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.choreService.UpdateChore(chore.ID, services.UpdateChoreInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(*updated))
}

// DeleteChore deletes a chore. Creator only.
func (h *ChoreHandler) DeleteChore(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	chore, ok := choreFromContext(c)
	if !ok {
		return
	}

	if err := h.choreService.DeleteChore(chore.ID, userID); err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Chore deleted",
	})
}

// AssignChore assigns room members to a chore.
func (h *ChoreHandler) AssignChore(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	chore, ok := choreFromContext(c)
	if !ok {
		return
	}

	type AssignRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.choreService.AssignUsers(services.AssignUsersInput{
		ChoreID: chore.ID,
		ActorID: userID,
		UserIDs: req.UserIDs,
	})
	if err != nil {
		respondChoreError(c, err)
		return
	}

	updated, err := h.choreService.GetChore(chore.ID)
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(*updated))
}

// UnassignChore removes assignments from a chore.
func (h *ChoreHandler) UnassignChore(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	chore, ok := choreFromContext(c)
	if !ok {
		return
	}

	type UnassignRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.choreService.UnassignUsers(chore.ID, userID, req.UserIDs); err != nil {
		respondChoreError(c, err)
		return
	}

	updated, err := h.choreService.GetChore(chore.ID)
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(*updated))
}

// ToggleChore toggles a chore between todo and done.
func (h *ChoreHandler) ToggleChore(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	chore, ok := choreFromContext(c)
	if !ok {
		return
	}

	updated, err := h.choreService.ToggleChoreStatus(chore.ID, userID)
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(*updated))
}

// GenerateChores extracts chore suggestions from free-form text with AI.
// The suggestions are returned to the client; nothing is persisted.
func (h *ChoreHandler) GenerateChores(c *gin.Context) {
	user, _, ok := h.roomScope(c)
	if !ok {
		return
	}

	type GenerateRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chores, err := h.choreService.GenerateChores(c.Request.Context(), services.GenerateChoresInput{
		Text:      req.Text,
		CreatorID: user.ID,
	})
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chores": chores,
	})
}

func respondChoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChoreNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotChoreCreator),
		errors.Is(err, services.ErrChorePermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrNoUserIDsProvided),
		errors.Is(err, services.ErrInvalidChoreAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.RespondWithError(c, http.StatusServiceUnavailable, apierrors.NewAPIError(err.Error()))
	case errors.Is(err, services.ErrAINoChoresGenerated),
		errors.Is(err, services.ErrAINoValidChores):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
