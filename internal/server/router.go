// Package server assembles the HTTP routing tree of the finance API.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fintracker/internal/docs" // swagger docs
	"fintracker/internal/handlers"
	"fintracker/internal/middleware"
	"fintracker/internal/report"
	"fintracker/internal/services"
)

// Deps are the collaborators the router is built from. Mailer may be nil
// when SMTP is not configured.
type Deps struct {
	DB          *gorm.DB
	Health      handlers.Pinger
	Renderer    report.Renderer
	Mailer      report.Mailer
	ReportTitle string
}

// NewRouter wires services and handlers over deps and returns the engine.
func NewRouter(deps Deps) *gin.Engine {
	db := deps.DB

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	subcategoryService := services.NewSubcategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService, subcategoryService)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)
	reportService := services.NewReportService(
		userService, transactionService, deps.Renderer, deps.Mailer, deps.ReportTitle,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, subcategoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(deps.Health)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", healthHandler.Health)

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	protected.GET("/categories", categoryHandler.ListCategories)

	subcategories := protected.Group("/subcategories")
	subcategories.GET("", categoryHandler.ListSubcategories)
	subcategories.POST("", categoryHandler.CreateSubcategory)
	subcategories.DELETE("/:id", categoryHandler.DeleteSubcategory)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.DELETE("/group/:groupId", transactionHandler.DeleteGroupFromDate)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	goals := protected.Group("/goals")
	goals.GET("", goalHandler.GetGoals)
	goals.POST("", goalHandler.CreateGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	protected.POST("/reports/custom", reportHandler.CustomReport)

	return router
}
