package dto

import (
	"time"

	"github.com/roomly/roomly-api/internal/models"
)

// ChoreAssignmentDTO represents a chore assignment in API responses
type ChoreAssignmentDTO struct {
	User UserDTO `json:"user"`
}

// ChoreDTO represents a chore in API responses
type ChoreDTO struct {
	ID          uint64               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ChoreStatus   `json:"status"`
	DueDate     *time.Time           `json:"due_date"`
	CreatorID   uint64               `json:"creator_id"`
	RoomID      uint64               `json:"room_id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Creator     *UserDTO             `json:"creator,omitempty"`
	Assignments []ChoreAssignmentDTO `json:"assignments,omitempty"`
}

// ToChoreDTO converts a Chore model to ChoreDTO
func ToChoreDTO(chore models.Chore) ChoreDTO {
	dto := ChoreDTO{
		ID:          chore.ID,
		Title:       chore.Title,
		Description: chore.Description,
		Status:      chore.Status,
		DueDate:     chore.DueDate,
		CreatorID:   chore.CreatorID,
		RoomID:      chore.RoomID,
		CreatedAt:   chore.CreatedAt,
		UpdatedAt:   chore.UpdatedAt,
	}

	if chore.Creator.ID != 0 {
		creator := ToUserDTO(chore.Creator)
		dto.Creator = &creator
	}

	if len(chore.Assignments) > 0 {
		dto.Assignments = make([]ChoreAssignmentDTO, len(chore.Assignments))
		for i, assignment := range chore.Assignments {
			dto.Assignments[i] = ChoreAssignmentDTO{User: ToUserDTO(assignment.User)}
		}
	}

	return dto
}

// ToChoreDTOs converts a slice of Chore models
func ToChoreDTOs(chores []models.Chore) []ChoreDTO {
	dtos := make([]ChoreDTO, len(chores))
	for i, chore := range chores {
		dtos[i] = ToChoreDTO(chore)
	}
	return dtos
}
