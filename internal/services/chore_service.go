package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roomly/roomly-api/internal/constants"
	"github.com/roomly/roomly-api/internal/models"
	"github.com/roomly/roomly-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChoreNotFound          = errors.New("chore not found")
	ErrNotChoreCreator        = errors.New("only the chore creator can perform this action")
	ErrChorePermissionDenied  = errors.New("user does not have permission to modify this chore")
	ErrNoUserIDsProvided      = errors.New("at least one user ID is required")
	ErrTitleRequired          = errors.New("title is required")
	ErrTitleEmpty             = errors.New("title cannot be empty")
	ErrInvalidChoreAssignee   = errors.New("one or more users do not exist or are not members of the room")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoChoresGenerated    = errors.New("AI did not generate any chores")
	ErrAINoValidChores        = errors.New("no valid chores could be created from AI output")
)

// ChoreService handles chore business logic. Chores are scoped to the
// principal's room; callers resolve the room from the authenticated user.
type ChoreService struct {
	choreRepo repository.ChoreRepository
	aiService *AIService
}

// NewChoreService creates a new ChoreService
func NewChoreService(choreRepo repository.ChoreRepository, aiService *AIService) *ChoreService {
	return &ChoreService{
		choreRepo: choreRepo,
		aiService: aiService,
	}
}

// ListChoresInput represents filters for listing chores
type ListChoresInput struct {
	RoomID        uint64
	UserID        uint64
	AssignedToMe  bool
	DueToday      bool
	Status        *models.ChoreStatus
	SortByDueDate bool
	Page          int
	PageSize      int
}

// CreateChoreInput represents input for creating a chore
type CreateChoreInput struct {
	Title       string
	Description string
	Status      models.ChoreStatus
	DueDate     *time.Time
	RoomID      uint64
	CreatorID   uint64
}

// UpdateChoreInput represents input for updating a chore
type UpdateChoreInput struct {
	Title        *string
	Description  *string
	Status       *models.ChoreStatus
	DueDate      *time.Time
	ClearDueDate bool
}

// AssignUsersInput represents input for assigning users to a chore
type AssignUsersInput struct {
	ChoreID uint64
	ActorID uint64
	UserIDs []uint64
}

// ListChores returns the room's chores matching the provided filters
func (s *ChoreService) ListChores(input ListChoresInput) ([]models.Chore, int64, error) {
	filter := repository.ChoreFilter{
		RoomID:        input.RoomID,
		Page:          input.Page,
		PageSize:      input.PageSize,
		SortByDueDate: input.SortByDueDate,
	}

	if input.Status != nil {
		filter.Status = input.Status
	}
	if input.AssignedToMe {
		filter.AssignedUserID = &input.UserID
	}
	if input.DueToday {
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)
		filter.DueDateFrom = &startOfDay
		filter.DueDateTo = &endOfDay
	}

	chores, total, err := s.choreRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list chores: %w", err)
	}

	return chores, total, nil
}

// GetChore returns a chore with related data
func (s *ChoreService) GetChore(choreID uint64) (*models.Chore, error) {
	chore, err := s.choreRepo.FindByID(choreID, "Creator", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoreNotFound
		}
		return nil, fmt.Errorf("failed to find chore: %w", err)
	}

	return chore, nil
}

// CreateChore creates a new chore and assigns the creator
func (s *ChoreService) CreateChore(input CreateChoreInput) (*models.Chore, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.ChoreStatusTodo
	}

	chore := &models.Chore{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
		RoomID:      input.RoomID,
		CreatorID:   input.CreatorID,
	}

	if err := s.choreRepo.Create(chore); err != nil {
		return nil, fmt.Errorf("failed to create chore: %w", err)
	}

	if err := s.choreRepo.AssignUsers(chore.ID, []uint64{input.CreatorID}); err != nil {
		return nil, fmt.Errorf("failed to assign creator to chore: %w", err)
	}

	return s.choreRepo.FindByID(chore.ID, "Creator", "Assignments", "Assignments.User")
}

// UpdateChore updates an existing chore
func (s *ChoreService) UpdateChore(choreID uint64, input UpdateChoreInput) (*models.Chore, error) {
	chore, err := s.choreRepo.FindByID(choreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoreNotFound
		}
		return nil, fmt.Errorf("failed to find chore: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		chore.Title = *input.Title
	}
	if input.Description != nil {
		chore.Description = *input.Description
	}
	if input.Status != nil {
		chore.Status = *input.Status
	}
	if input.ClearDueDate {
		chore.DueDate = nil
	} else if input.DueDate != nil {
		chore.DueDate = input.DueDate
	}

	if err := s.choreRepo.Update(chore); err != nil {
		return nil, fmt.Errorf("failed to update chore: %w", err)
	}

	return s.choreRepo.FindByID(chore.ID, "Creator", "Assignments", "Assignments.User")
}

// DeleteChore deletes a chore if the actor is the creator
func (s *ChoreService) DeleteChore(choreID, actorID uint64) error {
	chore, err := s.choreRepo.FindByID(choreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChoreNotFound
		}
		return fmt.Errorf("failed to find chore: %w", err)
	}

	if chore.CreatorID != actorID {
		return ErrNotChoreCreator
	}

	if err := s.choreRepo.Delete(choreID); err != nil {
		return fmt.Errorf("failed to delete chore: %w", err)
	}

	return nil
}

// AssignUsers assigns multiple users to a chore with validation
func (s *ChoreService) AssignUsers(input AssignUsersInput) error {
	if len(input.UserIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	chore, err := s.choreRepo.FindByID(input.ChoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChoreNotFound
		}
		return fmt.Errorf("failed to find chore: %w", err)
	}

	if chore.CreatorID != input.ActorID {
		return ErrNotChoreCreator
	}

	userIDs := uniqueUint64(input.UserIDs)

	count, err := s.choreRepo.CountUsersByIDs(userIDs, chore.RoomID)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(userIDs) {
		return ErrInvalidChoreAssignee
	}

	if err := s.choreRepo.AssignUsers(chore.ID, userIDs); err != nil {
		return fmt.Errorf("failed to assign users: %w", err)
	}

	return nil
}

// UnassignUsers removes user assignments from a chore
func (s *ChoreService) UnassignUsers(choreID, actorID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	chore, err := s.choreRepo.FindByID(choreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChoreNotFound
		}
		return fmt.Errorf("failed to find chore: %w", err)
	}

	if chore.CreatorID != actorID {
		return ErrNotChoreCreator
	}

	uniqueIDs := uniqueUint64(userIDs)

	if err := s.choreRepo.UnassignUsers(choreID, uniqueIDs); err != nil {
		return fmt.Errorf("failed to unassign users: %w", err)
	}

	return nil
}

// ToggleChoreStatus toggles a chore between todo and done
func (s *ChoreService) ToggleChoreStatus(choreID, actorID uint64) (*models.Chore, error) {
	chore, err := s.choreRepo.FindByID(choreID, "Assignments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoreNotFound
		}
		return nil, fmt.Errorf("failed to find chore: %w", err)
	}

	if chore.CreatorID != actorID {
		// Ensure the actor is assigned to the chore
		permitted := false
		for _, assignment := range chore.Assignments {
			if assignment.UserID == actorID {
				permitted = true
				break
			}
		}
		if !permitted {
			return nil, ErrChorePermissionDenied
		}
	}

	if chore.Status == models.ChoreStatusDone {
		chore.Status = models.ChoreStatusTodo
	} else {
		chore.Status = models.ChoreStatusDone
	}

	if err := s.choreRepo.Update(chore); err != nil {
		return nil, fmt.Errorf("failed to toggle status: %w", err)
	}

	return chore, nil
}

// GenerateChoresInput represents input for AI chore generation
type GenerateChoresInput struct {
	Text      string
	CreatorID uint64
}

// GenerateChores uses AI to generate chores from text
func (s *ChoreService) GenerateChores(ctx context.Context, input GenerateChoresInput) ([]GeneratedChore, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiChores, err := s.aiService.GenerateChoresFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chores: %w", err)
	}

	if len(aiChores) == 0 {
		return nil, ErrAINoChoresGenerated
	}
	if len(aiChores) > constants.MaxAIGeneratedChores {
		return nil, fmt.Errorf("AI generated too many chores (max %d)", constants.MaxAIGeneratedChores)
	}

	validChores := make([]GeneratedChore, 0, len(aiChores))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiChore := range aiChores {
		if strings.TrimSpace(aiChore.Title) == "" {
			continue
		}

		if aiChore.DueDate != nil {
			if aiChore.DueDate.Before(cutoff) {
				aiChore.DueDate = nil
			}
		}

		validChores = append(validChores, aiChore)
	}

	if len(validChores) == 0 {
		return nil, ErrAINoValidChores
	}

	return validChores, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
