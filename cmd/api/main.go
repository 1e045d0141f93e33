package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"moneta/internal/config"
	"moneta/internal/database"
	"moneta/internal/handlers"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/scheduler"
	"moneta/internal/services"
	"moneta/internal/validator"

	_ "moneta/internal/docs" // Import swagger docs
)

// @title           Moneta API
// @version         1.0
// @description     Moneta tracks per-user financial records (costs, expenses, investments) and projects investment growth under compound interest.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	costService := services.NewCostService(db)
	expenseService := services.NewExpenseService(db)
	investmentService := services.NewInvestmentService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	costHandler := handlers.NewCostHandler(costService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	jobHandler := handlers.NewJobHandler(investmentService)

	// Start the daily valuation recompute on its own timer, decoupled from
	// request handling.
	sched := scheduler.New()
	if err := sched.AddJob(appConfig.ValuationCron, services.NewValuationJob(investmentService)); err != nil {
		return fmt.Errorf("failed to register valuation job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Maintenance-job routes for an external cron trigger
	jobs := v1.Group("/jobs")
	jobs.Use(middleware.JobAuthMiddleware(appConfig.JobAPIKey))
	jobs.POST("/valuations/recompute", jobHandler.RecomputeValuations)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

	// User lifecycle routes
	users := protected.Group("/users")
	users.GET("/:id", userHandler.GetUserByID)
	users.DELETE("/:id", userHandler.DeactivateUser)
	users.POST("/:id/activate", userHandler.ActivateUser)

	// Cost routes
	costs := protected.Group("/costs")
	costs.POST("", costHandler.CreateCost)
	costs.GET("", costHandler.GetCosts)
	costs.GET("/:id", costHandler.GetCostByID)
	costs.PUT("/:id", costHandler.UpdateCost)
	costs.PATCH("/:id", costHandler.PatchCost)
	costs.DELETE("/:id", costHandler.DeactivateCost)
	costs.POST("/:id/activate", costHandler.ActivateCost)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.PATCH("/:id", expenseHandler.PatchExpense)
	expenses.DELETE("/:id", expenseHandler.DeactivateExpense)
	expenses.POST("/:id/activate", expenseHandler.ActivateExpense)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestmentByID)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.PATCH("/:id", investmentHandler.PatchInvestment)
	investments.DELETE("/:id", investmentHandler.DeactivateInvestment)
	investments.POST("/:id/activate", investmentHandler.ActivateInvestment)
	investments.GET("/:id/simulate", investmentHandler.SimulateInvestment)

	log.Infof("Starting Moneta backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
