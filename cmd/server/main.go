package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/roomly/roomly-api/internal/config"
	"github.com/roomly/roomly-api/internal/constants"
	"github.com/roomly/roomly-api/internal/database"
	"github.com/roomly/roomly-api/internal/handlers"
	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/repository"
	"github.com/roomly/roomly-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Wire repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	choreRepo := repository.NewChoreRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	authService := services.NewAuthService(userRepo)
	membershipService := services.NewMembershipService(roomRepo, userRepo)
	choreService := services.NewChoreService(choreRepo, aiService)
	expenseService := services.NewExpenseService(expenseRepo, roomRepo)

	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(membershipService, authService)
	choreHandler := handlers.NewChoreHandler(choreService, authService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Roomly API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Room membership routes (protected)
		rooms := api.Group("/rooms")
		rooms.Use(middleware.RequireAuth())
		{
			rooms.POST("/invite", roomHandler.Invite)
			rooms.GET("/my-room", roomHandler.GetMyRoom)
			rooms.GET("/members", roomHandler.ListMembers)
			rooms.GET("/:roomId/users", roomHandler.ListRoomUsers)
			rooms.POST("/leave", roomHandler.Leave)
			rooms.DELETE("/delete", roomHandler.DeleteRoom)
			rooms.POST("/join", roomHandler.Join)
			rooms.POST("/regenerate-code", roomHandler.RegenerateInviteCode)
		}

		// Chore routes (protected)
		chores := api.Group("/chores")
		chores.Use(middleware.RequireAuth())
		{
			chores.GET("", choreHandler.ListChores)
			chores.POST("", choreHandler.CreateChore)
			chores.POST("/generate", choreHandler.GenerateChores)
			chores.GET("/:id", middleware.RequireChoreAccess(), choreHandler.GetChore)
			chores.PATCH("/:id", middleware.RequireChoreAccess(), choreHandler.UpdateChore)
			chores.DELETE("/:id", middleware.RequireChoreAccess(), choreHandler.DeleteChore)
			chores.POST("/:id/assign", middleware.RequireChoreAccess(), choreHandler.AssignChore)
			chores.POST("/:id/unassign", middleware.RequireChoreAccess(), choreHandler.UnassignChore)
			chores.POST("/:id/toggle", middleware.RequireChoreAccess(), choreHandler.ToggleChore)
		}

		// Expense routes (protected)
		expenses := api.Group("/expenses")
		expenses.Use(middleware.RequireAuth())
		{
			expenses.GET("", expenseHandler.ListExpenses)
			expenses.POST("", expenseHandler.CreateExpense)
			expenses.GET("/summary", expenseHandler.ExpenseSummary)
			expenses.DELETE("/:id", expenseHandler.DeleteExpense)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
