package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roomly/roomly-api/internal/constants"
	"github.com/roomly/roomly-api/internal/database"
	apierrors "github.com/roomly/roomly-api/internal/errors"
	"github.com/roomly/roomly-api/internal/models"
)

// RequireChoreAccess checks if the user has access to a chore.
// The user must belong to the chore's room.
func RequireChoreAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		choreIDStr := c.Param("id")
		choreID, err := strconv.ParseUint(choreIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid chore ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var chore models.Chore
		if err := database.GetDB().
			Preload("Creator").
			Preload("Assignments").
			Preload("Assignments.User").
			First(&chore, choreID).Error; err != nil {
			apierrors.NotFound(c, "Chore not found")
			c.Abort()
			return
		}

		// The room back-reference is the access check: the user must live in
		// the chore's room. Return 404 instead of 403 to avoid leaking chore
		// existence.
		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if user.RoomID == nil || *user.RoomID != chore.RoomID {
			apierrors.NotFound(c, "Chore not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyChore, chore)
		c.Next()
	}
}
