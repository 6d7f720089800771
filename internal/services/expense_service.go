package services

import (
	"errors"
	"fmt"

	"github.com/roomly/roomly-api/internal/models"
	"github.com/roomly/roomly-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound         = errors.New("expense not found")
	ErrDescriptionRequired     = errors.New("description is required")
	ErrAmountNotPositive       = errors.New("amount must be positive")
	ErrExpensePermissionDenied = errors.New("only the payer or the room creator can delete an expense")
)

// ExpenseService handles shared-payment business logic for a room.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	roomRepo    repository.RoomRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo repository.ExpenseRepository, roomRepo repository.RoomRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		roomRepo:    roomRepo,
	}
}

// CreateExpenseInput represents input for recording an expense
type CreateExpenseInput struct {
	Description string
	AmountCents int64
	RoomID      uint64
	PaidBy      uint64
}

// CreateExpense records a shared payment
func (s *ExpenseService) CreateExpense(input CreateExpenseInput) (*models.Expense, error) {
	if input.Description == "" {
		return nil, ErrDescriptionRequired
	}
	if input.AmountCents <= 0 {
		return nil, ErrAmountNotPositive
	}

	expense := &models.Expense{
		Description: input.Description,
		AmountCents: input.AmountCents,
		RoomID:      input.RoomID,
		PaidBy:      input.PaidBy,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return s.expenseRepo.FindByID(expense.ID)
}

// ListExpenses returns the room's expenses, newest first
func (s *ExpenseService) ListExpenses(roomID uint64, page, pageSize int) ([]models.Expense, int64, error) {
	expenses, total, err := s.expenseRepo.ListByRoomID(roomID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, total, nil
}

// DeleteExpense deletes an expense. Allowed for the payer and for the room
// creator.
func (s *ExpenseService) DeleteExpense(expenseID, actorID uint64) error {
	expense, err := s.expenseRepo.FindByID(expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to find expense: %w", err)
	}

	if expense.PaidBy != actorID {
		room, err := s.roomRepo.FindByID(expense.RoomID)
		if err != nil || room.CreatedBy != actorID {
			return ErrExpensePermissionDenied
		}
	}

	if err := s.expenseRepo.Delete(expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

// Summary returns the total paid by each member of the room
func (s *ExpenseService) Summary(roomID uint64) ([]repository.PayerTotal, error) {
	totals, err := s.expenseRepo.SumByPayer(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}
	return totals, nil
}
