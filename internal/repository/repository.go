package repository

import (
	"time"

	"github.com/roomly/roomly-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByRoomID lists all users whose room back-reference points at the room
	ListByRoomID(roomID uint64) ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// ClearRoomByRoomID nulls the room reference of every user pointing at the
	// room and reports how many rows were affected
	ClearRoomByRoomID(roomID uint64) (int64, error)
}

// RoomRepository defines the interface for room data access
type RoomRepository interface {
	// Create creates a new room
	Create(room *models.Room) error

	// FindByID finds a room by ID
	FindByID(id uint64) (*models.Room, error)

	// FindByIDWithMembers finds a room with its member set and creator loaded
	FindByIDWithMembers(id uint64) (*models.Room, error)

	// FindByInviteCode finds a room by invite code
	FindByInviteCode(code string) (*models.Room, error)

	// Update updates a room
	Update(room *models.Room) error

	// Delete deletes a room and all related data
	Delete(id uint64) error

	// AddMembers inserts member rows in a single batch
	AddMembers(members []models.RoomMember) error

	// RemoveMember removes a member from a room
	RemoveMember(roomID, userID uint64) error

	// FindMember finds a specific room member
	FindMember(roomID, userID uint64) (*models.RoomMember, error)

	// CountMembers counts the members of a room
	CountMembers(roomID uint64) (int64, error)
}

// ChoreRepository defines the interface for chore data access
type ChoreRepository interface {
	// Create creates a new chore
	Create(chore *models.Chore) error

	// FindByID finds a chore by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Chore, error)

	// List retrieves chores with filtering and pagination
	List(filter ChoreFilter) ([]models.Chore, int64, error)

	// Update updates a chore
	Update(chore *models.Chore) error

	// Delete soft deletes a chore
	Delete(id uint64) error

	// AssignUsers assigns multiple users to a chore
	AssignUsers(choreID uint64, userIDs []uint64) error

	// UnassignUsers removes user assignments from a chore
	UnassignUsers(choreID uint64, userIDs []uint64) error

	// CountUsersByIDs counts how many of the given user IDs belong to the room
	CountUsersByIDs(userIDs []uint64, roomID uint64) (int64, error)
}

// ChoreFilter holds filtering options for listing chores
type ChoreFilter struct {
	RoomID         uint64
	Status         *models.ChoreStatus
	AssignedUserID *uint64
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	SortByDueDate  bool
	Page           int
	PageSize       int
}

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	// Create creates a new expense
	Create(expense *models.Expense) error

	// FindByID finds an expense by ID
	FindByID(id uint64) (*models.Expense, error)

	// ListByRoomID retrieves a room's expenses, newest first, paginated
	ListByRoomID(roomID uint64, page, pageSize int) ([]models.Expense, int64, error)

	// Delete soft deletes an expense
	Delete(id uint64) error

	// SumByPayer returns the total amount paid by each member of the room
	SumByPayer(roomID uint64) ([]PayerTotal, error)
}

// PayerTotal is a per-payer aggregate of a room's expenses
type PayerTotal struct {
	UserID     uint64 `json:"user_id"`
	TotalCents int64  `json:"total_cents"`
}
