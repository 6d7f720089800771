package services

import (
	"fmt"
	"testing"

	"github.com/roomly/roomly-api/internal/models"
	"github.com/roomly/roomly-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type expenseTestEnv struct {
	db      *gorm.DB
	service *ExpenseService
}

func setupExpenseTestEnv(t *testing.T) expenseTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.Expense{},
	)
	require.NoError(t, err)

	expenseRepo := repository.NewExpenseRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	service := NewExpenseService(expenseRepo, roomRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return expenseTestEnv{db: db, service: service}
}

func createExpenseTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createExpenseTestRoom(t *testing.T, db *gorm.DB, creator *models.User) *models.Room {
	t.Helper()
	room := &models.Room{
		CreatedBy:  creator.ID,
		InviteCode: fmt.Sprintf("CODE-%d", creator.ID),
	}
	require.NoError(t, db.Create(room).Error)
	require.NoError(t, db.Create(&models.RoomMember{RoomID: room.ID, UserID: creator.ID}).Error)
	creator.RoomID = &room.ID
	require.NoError(t, db.Save(creator).Error)
	return room
}

func TestExpenseService_CreateExpense(t *testing.T) {
	env := setupExpenseTestEnv(t)

	payer := createExpenseTestUser(t, env.db, "payer")
	room := createExpenseTestRoom(t, env.db, payer)

	expense, err := env.service.CreateExpense(CreateExpenseInput{
		Description: "Groceries",
		AmountCents: 4250,
		RoomID:      room.ID,
		PaidBy:      payer.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(4250), expense.AmountCents)

	_, err = env.service.CreateExpense(CreateExpenseInput{
		Description: "Free stuff",
		AmountCents: 0,
		RoomID:      room.ID,
		PaidBy:      payer.ID,
	})
	require.ErrorIs(t, err, ErrAmountNotPositive)

	_, err = env.service.CreateExpense(CreateExpenseInput{
		AmountCents: 100,
		RoomID:      room.ID,
		PaidBy:      payer.ID,
	})
	require.ErrorIs(t, err, ErrDescriptionRequired)
}

func TestExpenseService_DeleteExpense_Permissions(t *testing.T) {
	env := setupExpenseTestEnv(t)

	creator := createExpenseTestUser(t, env.db, "creator")
	room := createExpenseTestRoom(t, env.db, creator)

	payer := createExpenseTestUser(t, env.db, "payer")
	require.NoError(t, env.db.Create(&models.RoomMember{RoomID: room.ID, UserID: payer.ID}).Error)
	payer.RoomID = &room.ID
	require.NoError(t, env.db.Save(payer).Error)

	bystander := createExpenseTestUser(t, env.db, "bystander")
	require.NoError(t, env.db.Create(&models.RoomMember{RoomID: room.ID, UserID: bystander.ID}).Error)
	bystander.RoomID = &room.ID
	require.NoError(t, env.db.Save(bystander).Error)

	expense, err := env.service.CreateExpense(CreateExpenseInput{
		Description: "Internet bill",
		AmountCents: 6000,
		RoomID:      room.ID,
		PaidBy:      payer.ID,
	})
	require.NoError(t, err)

	// A regular member who did not pay cannot delete
	err = env.service.DeleteExpense(expense.ID, bystander.ID)
	require.ErrorIs(t, err, ErrExpensePermissionDenied)

	// The room creator can
	require.NoError(t, env.service.DeleteExpense(expense.ID, creator.ID))

	err = env.service.DeleteExpense(expense.ID, payer.ID)
	require.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestExpenseService_Summary(t *testing.T) {
	env := setupExpenseTestEnv(t)

	alice := createExpenseTestUser(t, env.db, "alice")
	room := createExpenseTestRoom(t, env.db, alice)

	bob := createExpenseTestUser(t, env.db, "bob")
	require.NoError(t, env.db.Create(&models.RoomMember{RoomID: room.ID, UserID: bob.ID}).Error)
	bob.RoomID = &room.ID
	require.NoError(t, env.db.Save(bob).Error)

	for _, e := range []CreateExpenseInput{
		{Description: "Rent", AmountCents: 120000, RoomID: room.ID, PaidBy: alice.ID},
		{Description: "Groceries", AmountCents: 4500, RoomID: room.ID, PaidBy: alice.ID},
		{Description: "Utilities", AmountCents: 8000, RoomID: room.ID, PaidBy: bob.ID},
	} {
		_, err := env.service.CreateExpense(e)
		require.NoError(t, err)
	}

	totals, err := env.service.Summary(room.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byPayer := make(map[uint64]int64, len(totals))
	for _, total := range totals {
		byPayer[total.UserID] = total.TotalCents
	}
	require.Equal(t, int64(124500), byPayer[alice.ID])
	require.Equal(t, int64(8000), byPayer[bob.ID])
}
