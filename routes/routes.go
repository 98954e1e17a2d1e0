package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pos-backend/configs"
	"pos-backend/controllers"
	"pos-backend/middlewares"
	"pos-backend/pkg/authz"
	"pos-backend/repository"
	"pos-backend/services"
)

// RegisterRoutes wires repositories, services and controllers onto the
// engine. Admin-only groups require the admin capability; everything
// else behind auth is open to any authenticated operator.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	userSvc := services.NewUserService(userRepo)
	productSvc := services.NewProductService(productRepo)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo)
	paymentSvc := services.NewPaymentService(db, paymentRepo, orderRepo)
	expenseSvc := services.NewExpenseService(expenseRepo)
	reportSvc := services.NewReportService(reportRepo)

	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(userSvc)
	productCtrl := controllers.NewProductController(productSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	expenseCtrl := controllers.NewExpenseController(expenseSvc)
	reportCtrl := controllers.NewReportController(reportSvc)

	// Public
	r.POST("/register/", authCtrl.Register)
	r.POST("/token/", authCtrl.Login)
	r.POST("/token/refresh/", authCtrl.Refresh)

	// Any authenticated operator
	auth := r.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		auth.GET("/user/", authCtrl.Profile)

		auth.GET("/products/", productCtrl.List)
		auth.GET("/products/:id/", productCtrl.Get)

		auth.GET("/orders/", orderCtrl.List)
		auth.POST("/orders/", orderCtrl.Create)
		auth.GET("/orders/:id/", orderCtrl.Get)
		auth.PATCH("/orders/:id/", orderCtrl.Update)
		auth.PUT("/orders/:id/", orderCtrl.Update)
		auth.POST("/orders/:id/add_item/", orderCtrl.AddItem)
		auth.PATCH("/order-items/:id/", orderCtrl.UpdateItem)
		auth.PUT("/order-items/:id/", orderCtrl.UpdateItem)
		auth.DELETE("/order-items/:id/", orderCtrl.RemoveItem)

		auth.GET("/expenses/", expenseCtrl.List)
		auth.POST("/expenses/", expenseCtrl.Create)
		auth.GET("/expenses/:id/", expenseCtrl.Get)
		auth.PATCH("/expenses/:id/", expenseCtrl.Update)
		auth.PUT("/expenses/:id/", expenseCtrl.Update)
		auth.DELETE("/expenses/:id/", expenseCtrl.Delete)

		auth.GET("/payments/", paymentCtrl.List)
		auth.POST("/payments/", paymentCtrl.Create)
		auth.GET("/payments/:id/", paymentCtrl.Get)
		auth.POST("/payments/:id/finalize/", paymentCtrl.Finalize)
		auth.POST("/payments/:id/fail/", paymentCtrl.Fail)
	}

	// Admin only
	admin := r.Group("", middlewares.AuthMiddleware(cfg.JWTSecret, authz.CapAdmin))
	{
		admin.POST("/products/", productCtrl.Create)
		admin.PATCH("/products/:id/", productCtrl.Update)
		admin.PUT("/products/:id/", productCtrl.Update)
		admin.DELETE("/products/:id/", productCtrl.Delete)

		admin.DELETE("/orders/:id/", orderCtrl.Delete)
		admin.POST("/orders/bulk_delete/", orderCtrl.BulkDelete)

		admin.GET("/users/", userCtrl.List)
		admin.POST("/users/", userCtrl.Create)
		admin.GET("/users/:id/", userCtrl.Get)
		admin.PATCH("/users/:id/", userCtrl.Update)
		admin.PUT("/users/:id/", userCtrl.Update)
		admin.DELETE("/users/:id/", userCtrl.Delete)

		reports := admin.Group("/reports")
		{
			reports.GET("/dashboard/", reportCtrl.Dashboard)
			reports.GET("/sales/", reportCtrl.Sales)
			reports.GET("/sales/export_csv/", reportCtrl.ExportSalesCSV)
			reports.GET("/products/", reportCtrl.Products)
			reports.GET("/products/export_csv/", reportCtrl.ExportProductsCSV)
			reports.GET("/orders/", reportCtrl.Orders)
			reports.GET("/orders/export_csv/", reportCtrl.ExportOrdersCSV)
			reports.GET("/financial/", reportCtrl.Financial)
			reports.GET("/financial/export_csv/", reportCtrl.ExportFinancialCSV)
			reports.GET("/expenses/", reportCtrl.Expenses)
			reports.GET("/expenses/export_csv/", reportCtrl.ExportExpensesCSV)
		}
	}
}
