package dto

import (
	"time"

	"github.com/roomly/roomly-api/internal/models"
)

// ExpenseDTO represents a shared payment in API responses
type ExpenseDTO struct {
	ID          uint64    `json:"id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	PaidBy      uint64    `json:"paid_by"`
	RoomID      uint64    `json:"room_id"`
	CreatedAt   time.Time `json:"created_at"`
	Payer       *UserDTO  `json:"payer,omitempty"`
}

// ToExpenseDTO converts an Expense model to ExpenseDTO
func ToExpenseDTO(expense models.Expense) ExpenseDTO {
	dto := ExpenseDTO{
		ID:          expense.ID,
		Description: expense.Description,
		AmountCents: expense.AmountCents,
		PaidBy:      expense.PaidBy,
		RoomID:      expense.RoomID,
		CreatedAt:   expense.CreatedAt,
	}

	if expense.Payer.ID != 0 {
		payer := ToUserDTO(expense.Payer)
		dto.Payer = &payer
	}

	return dto
}

// ToExpenseDTOs converts a slice of Expense models
func ToExpenseDTOs(expenses []models.Expense) []ExpenseDTO {
	dtos := make([]ExpenseDTO, len(expenses))
	for i, expense := range expenses {
		dtos[i] = ToExpenseDTO(expense)
	}
	return dtos
}
