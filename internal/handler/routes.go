package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, accountHandler *AccountHandler, categoryHandler *CategoryHandler, transactionHandler *TransactionHandler, recurringHandler *RecurringHandler, budgetHandler *BudgetHandler, analyticsHandler *AnalyticsHandler, settingsHandler *SettingsHandler) {
	api := e.Group("/api")

	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.PUT("/:id", accountHandler.UpdateAccount)

	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	rules := api.Group("/recurring-rules")
	rules.POST("", recurringHandler.CreateRule)
	rules.GET("", recurringHandler.GetRules)
	rules.GET("/:id", recurringHandler.GetRule)
	rules.PUT("/:id", recurringHandler.UpdateRule)
	rules.DELETE("/:id", recurringHandler.DeleteRule)
	rules.POST("/:id/generate-next", recurringHandler.GenerateNext)

	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	analytics := api.Group("/analytics")
	analytics.GET("/month-summary", analyticsHandler.GetMonthSummary)
	analytics.GET("/category-breakdown", analyticsHandler.GetCategoryBreakdown)
	analytics.GET("/net-worth-trend", analyticsHandler.GetNetWorthTrend)
	analytics.GET("/budget-vs-actual", analyticsHandler.GetBudgetVsActual)
	analytics.GET("/recurring-costs", analyticsHandler.GetRecurringCosts)

	settings := api.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)
}
