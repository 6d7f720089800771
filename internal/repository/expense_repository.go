package repository

import (
	"github.com/roomly/roomly-api/internal/models"
	"gorm.io/gorm"
)

// GormExpenseRepository is a GORM implementation of ExpenseRepository
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create creates a new expense
func (r *GormExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(id uint64) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Preload("Payer").First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListByRoomID retrieves a room's expenses, newest first, paginated
func (r *GormExpenseRepository) ListByRoomID(roomID uint64, page, pageSize int) ([]models.Expense, int64, error) {
	query := r.db.Model(&models.Expense{}).Where("room_id = ?", roomID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []models.Expense
	offset := (page - 1) * pageSize
	if err := query.
		Preload("Payer").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&expenses).Error; err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// Delete soft deletes an expense
func (r *GormExpenseRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Expense{}, id).Error
}

// SumByPayer returns the total amount paid by each member of the room
func (r *GormExpenseRepository) SumByPayer(roomID uint64) ([]PayerTotal, error) {
	var totals []PayerTotal
	err := r.db.Model(&models.Expense{}).
		Select("paid_by AS user_id, SUM(amount_cents) AS total_cents").
		Where("room_id = ?", roomID).
		Group("paid_by").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
