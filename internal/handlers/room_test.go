package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/roomly/roomly-api/internal/constants"
	"github.com/roomly/roomly-api/internal/database"
	"github.com/roomly/roomly-api/internal/models"
	"github.com/roomly/roomly-api/internal/repository"
	"github.com/roomly/roomly-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type roomTestEnv struct {
	db                *gorm.DB
	handler           *RoomHandler
	membershipService *services.MembershipService
}

func setupRoomTestEnv(t *testing.T) roomTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.Chore{},
		&models.ChoreAssignment{},
		&models.Expense{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	membershipService := services.NewMembershipService(roomRepo, userRepo)
	authService := services.NewAuthService(userRepo)
	handler := NewRoomHandler(membershipService, authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return roomTestEnv{
		db:                db,
		handler:           handler,
		membershipService: membershipService,
	}
}

func roomTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func createRoomTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRoomHandler_Invite_MissingEmails(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")

	body, err := json.Marshal(map[string][]string{"emails": {}})
	require.NoError(t, err)

	c, w := roomTestContext(http.MethodPost, "/api/rooms/invite", body, host.ID)

	env.handler.Invite(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, false, response["success"])
	require.NotEmpty(t, response["message"])
}

func TestRoomHandler_Invite_PartialBatch(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")
	guest := createRoomTestUser(t, env.db, "guest")

	payload := map[string][]string{
		"emails": {guest.Email, "nobody@example.com"},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := roomTestContext(http.MethodPost, "/api/rooms/invite", body, host.ID)

	env.handler.Invite(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Results []string `json:"results"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Results, 1)
	require.Contains(t, response.Results[0], guest.Email)
	require.Len(t, response.Errors, 1)
	require.Contains(t, response.Errors[0], "not registered")
}

func TestRoomHandler_Invite_NoSuccessesKeepsResultsArray(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")

	body, err := json.Marshal(map[string][]string{"emails": {"nobody@example.com"}})
	require.NoError(t, err)

	c, w := roomTestContext(http.MethodPost, "/api/rooms/invite", body, host.ID)

	env.handler.Invite(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"results":[]`)

	var response struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Errors, 1)
}

func TestRoomHandler_GetMyRoom(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")
	guest := createRoomTestUser(t, env.db, "guest")

	// No room yet
	c, w := roomTestContext(http.MethodGet, "/api/rooms/my-room", nil, host.ID)
	env.handler.GetMyRoom(c)

	require.Equal(t, http.StatusOK, w.Code)
	var noRoom map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &noRoom))
	require.Equal(t, true, noRoom["success"])
	require.Equal(t, false, noRoom["hasRoom"])

	_, err := env.membershipService.Invite(host, []string{guest.Email})
	require.NoError(t, err)

	c, w = roomTestContext(http.MethodGet, "/api/rooms/my-room", nil, host.ID)
	env.handler.GetMyRoom(c)

	require.Equal(t, http.StatusOK, w.Code)
	var withRoom struct {
		Success bool `json:"success"`
		HasRoom bool `json:"hasRoom"`
		Room    struct {
			ID      uint64 `json:"id"`
			Members []struct {
				User struct {
					Username string `json:"username"`
				} `json:"user"`
			} `json:"members"`
		} `json:"room"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &withRoom))
	require.True(t, withRoom.HasRoom)
	require.Len(t, withRoom.Room.Members, 2)
}

func TestRoomHandler_ListMembers(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")
	guest := createRoomTestUser(t, env.db, "guest")

	_, err := env.membershipService.Invite(host, []string{guest.Email})
	require.NoError(t, err)

	c, w := roomTestContext(http.MethodGet, "/api/rooms/members", nil, host.ID)
	env.handler.ListMembers(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Members []struct {
			ID       uint64 `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.Len(t, response.Members, 2)
}

func TestRoomHandler_ListRoomUsers_ForbiddenForOtherRooms(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")
	guest := createRoomTestUser(t, env.db, "guest")
	outsider := createRoomTestUser(t, env.db, "outsider")

	outcome, err := env.membershipService.Invite(host, []string{guest.Email})
	require.NoError(t, err)

	url := fmt.Sprintf("/api/rooms/%d/users", outcome.Room.ID)
	c, w := roomTestContext(http.MethodGet, url, nil, outsider.ID)
	c.Params = gin.Params{{Key: "roomId", Value: fmt.Sprintf("%d", outcome.Room.ID)}}
	env.handler.ListRoomUsers(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	// The member sees a bare array
	c, w = roomTestContext(http.MethodGet, url, nil, host.ID)
	c.Params = gin.Params{{Key: "roomId", Value: fmt.Sprintf("%d", outcome.Room.ID)}}
	env.handler.ListRoomUsers(c)

	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
}

func TestRoomHandler_Leave(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")

	// Leaving without a room is a client error
	c, w := roomTestContext(http.MethodPost, "/api/rooms/leave", nil, host.ID)
	env.handler.Leave(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	guest := createRoomTestUser(t, env.db, "guest")
	_, err := env.membershipService.Invite(host, []string{guest.Email})
	require.NoError(t, err)

	c, w = roomTestContext(http.MethodPost, "/api/rooms/leave", nil, guest.ID)
	env.handler.Leave(c)
	require.Equal(t, http.StatusOK, w.Code)

	var left models.User
	require.NoError(t, env.db.First(&left, guest.ID).Error)
	require.Nil(t, left.RoomID)
}

func TestRoomHandler_DeleteRoom(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")
	guest := createRoomTestUser(t, env.db, "guest")

	outcome, err := env.membershipService.Invite(host, []string{guest.Email})
	require.NoError(t, err)

	// Non-creator is rejected
	c, w := roomTestContext(http.MethodDelete, "/api/rooms/delete", nil, guest.ID)
	env.handler.DeleteRoom(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	c, w = roomTestContext(http.MethodDelete, "/api/rooms/delete", nil, host.ID)
	env.handler.DeleteRoom(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success         bool   `json:"success"`
		AffectedMembers int64  `json:"affectedMembers"`
		Message         string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.Equal(t, int64(2), response.AffectedMembers)

	var room models.Room
	require.ErrorIs(t, env.db.First(&room, outcome.Room.ID).Error, gorm.ErrRecordNotFound)
}

func TestRoomHandler_Join(t *testing.T) {
	env := setupRoomTestEnv(t)

	host := createRoomTestUser(t, env.db, "host")
	guest := createRoomTestUser(t, env.db, "guest")
	joiner := createRoomTestUser(t, env.db, "joiner")

	outcome, err := env.membershipService.Invite(host, []string{guest.Email})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"invite_code": outcome.Room.InviteCode})
	require.NoError(t, err)

	c, w := roomTestContext(http.MethodPost, "/api/rooms/join", body, joiner.ID)
	env.handler.Join(c)
	require.Equal(t, http.StatusOK, w.Code)

	var joined models.User
	require.NoError(t, env.db.First(&joined, joiner.ID).Error)
	require.NotNil(t, joined.RoomID)
	require.Equal(t, outcome.Room.ID, *joined.RoomID)

	// Unknown code
	body, err = json.Marshal(map[string]string{"invite_code": "0000-0000-0000"})
	require.NoError(t, err)
	c, w = roomTestContext(http.MethodPost, "/api/rooms/join", body, createRoomTestUser(t, env.db, "late").ID)
	env.handler.Join(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
