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
)

// RoomHandler coordinates room membership HTTP handlers.
type RoomHandler struct {
	membershipService *services.MembershipService
	authService       *services.AuthService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(membershipService *services.MembershipService, authService *services.AuthService) *RoomHandler {
	return &RoomHandler{
		membershipService: membershipService,
		authService:       authService,
	}
}

// principal loads the authenticated user, including the room back-reference
// every membership operation starts from.
func (h *RoomHandler) principal(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	return user, true
}

// Invite invites a batch of emails into the principal's room, creating the
// room on first invite. Individual failures are reported per email.
func (h *RoomHandler) Invite(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	type InviteRequest struct {
		Emails []string `json:"emails"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	outcome, err := h.membershipService.Invite(principal, req.Emails)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	message := "Invitations processed"
	if outcome.RoomCreated {
		message = "Room created and invitations processed"
	}

	response := gin.H{
		"success": true,
		"message": message,
		"results": outcome.Results,
	}
	if len(outcome.Errors) > 0 {
		response["errors"] = outcome.Errors
	}

	c.JSON(http.StatusOK, response)
}

// GetMyRoom returns the principal's room, or a no-room indicator.
func (h *RoomHandler) GetMyRoom(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	room, err := h.membershipService.GetMyRoom(principal)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	if room == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"hasRoom": false,
			"message": "You are not in a room yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"hasRoom": true,
		"room":    dto.ToRoomDetailDTO(*room),
	})
}

// ListMembers returns the members of the principal's room.
func (h *RoomHandler) ListMembers(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	members, err := h.membershipService.ListMembers(principal)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"members": dto.ToUserDTOs(members),
	})
}

// ListRoomUsers returns the members of the requested room as a bare array.
// Kept for compatibility with clients of the original endpoint shape.
func (h *RoomHandler) ListRoomUsers(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	roomID, err := strconv.ParseUint(c.Param("roomId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid room ID")
		return
	}

	members, err := h.membershipService.ListRoomMembers(principal, roomID)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(members))
}

// Leave removes the principal from their room.
func (h *RoomHandler) Leave(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.membershipService.Leave(principal); err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You have left the room",
	})
}

// DeleteRoom deletes the principal's room. Creator only.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	affected, err := h.membershipService.DeleteRoom(principal)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Room deleted",
		"affectedMembers": affected,
	})
}

// Join adds the principal to a room via invite code.
func (h *RoomHandler) Join(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.membershipService.JoinByInviteCode(principal, req.InviteCode)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Joined room successfully",
		"room":    dto.ToRoomDTO(*room, false),
	})
}

// RegenerateInviteCode replaces the room's invite code. Creator only.
func (h *RoomHandler) RegenerateInviteCode(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	room, err := h.membershipService.RegenerateInviteCode(principal)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"room":    dto.ToRoomDTO(*room, true),
	})
}

func respondMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoEmailsProvided),
		errors.Is(err, services.ErrNoRoom),
		errors.Is(err, services.ErrAlreadyInRoom):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRoomAccessDenied),
		errors.Is(err, services.ErrNotRoomCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
