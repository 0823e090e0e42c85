package routes

import (
	"salon-admin-backend/config"
	"salon-admin-backend/controllers"
	"salon-admin-backend/models"
	"salon-admin-backend/services"
	"salon-admin-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires every controller against the given database handle.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	points := services.NewPointsService(db)
	executions := services.NewExecutionService(db, points)
	receipts := services.NewReceiptNumberGenerator(db)

	authController := controllers.NewAuthController(db)
	bookingController := controllers.NewBookingController(db, executions)
	installmentController := controllers.NewInstallmentController(db)
	serviceController := controllers.NewServiceController(db)
	executionController := controllers.NewServiceExecutionController(db, receipts, executions)
	packageController := controllers.NewPackageController(db)
	packageServiceController := controllers.NewPackageServiceController(db)
	employeeController := controllers.NewEmployeeController(db)
	expenseController := controllers.NewExpenseController(db)
	advanceController := controllers.NewAdvanceController(db)
	workerPointsController := controllers.NewWorkerPointsController(db)
	reportController := controllers.NewReportController(db)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	admins := []string{models.RoleAdmin}
	staff := []string{models.RoleAdmin, models.RoleSupervisor}
	everyone := []string{models.RoleAdmin, models.RoleSupervisor, models.RoleWorker}
	workers := []string{models.RoleWorker}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", utils.RequireRoles(staff...), bookingController.CreateBooking)
			bookings.GET("", utils.RequireRoles(staff...), bookingController.GetBookings)
			bookings.GET("/today", utils.RequireRoles(everyone...), bookingController.GetTodayBookings)
			bookings.GET("/search", utils.RequireRoles(staff...), bookingController.SearchBookings)
			bookings.GET("/:id", utils.RequireRoles(staff...), bookingController.GetBooking)
			bookings.PUT("/:id", utils.RequireRoles(staff...), bookingController.UpdateBooking)
			bookings.DELETE("/:id", utils.RequireRoles(staff...), bookingController.DeleteBooking)
			bookings.GET("/:id/receipt", utils.RequireRoles(everyone...), bookingController.GetBookingReceipt)
			bookings.GET("/:id/services", utils.RequireRoles(everyone...), bookingController.ListBookingServices)
			bookings.POST("/:id/execute", utils.RequireRoles(workers...), bookingController.ExecuteBookingItem)
		}

		installments := api.Group("/installments")
		{
			installments.POST("", utils.RequireRoles(staff...), installmentController.CreateInstallment)
			installments.GET("/booking/:bookingId", utils.RequireRoles(staff...), installmentController.GetBookingInstallments)
		}

		servicesGroup := api.Group("/services")
		{
			servicesGroup.POST("", utils.RequireRoles(admins...), serviceController.CreateService)
			servicesGroup.GET("", utils.RequireRoles(everyone...), serviceController.GetServices)
			servicesGroup.PUT("/:id", utils.RequireRoles(staff...), serviceController.UpdateService)
			servicesGroup.DELETE("/:id", utils.RequireRoles(staff...), serviceController.DeleteService)

			servicesGroup.POST("/execute", utils.RequireRoles(staff...), executionController.CreateExecution)
			servicesGroup.GET("/execute", utils.RequireRoles(everyone...), executionController.GetExecutions)
			servicesGroup.POST("/execute/:id", utils.RequireRoles(workers...), executionController.ClaimExecution)
			servicesGroup.DELETE("/execute/:id", utils.RequireRoles(staff...), executionController.DeleteExecution)
			servicesGroup.GET("/execute/receipt/:receiptNumber", utils.RequireRoles(workers...), executionController.FindByReceiptNumber)
			servicesGroup.GET("/receipt/:id", utils.RequireRoles(everyone...), executionController.GetExecutionReceipt)
		}

		packages := api.Group("/packages")
		{
			packages.POST("", utils.RequireRoles(admins...), packageController.CreatePackage)
			packages.GET("", utils.RequireRoles(everyone...), packageController.GetPackages)
			packages.GET("/:id", utils.RequireRoles(everyone...), packageController.GetPackage)
			packages.PUT("/:id", utils.RequireRoles(admins...), packageController.UpdatePackage)
			packages.DELETE("/:id", utils.RequireRoles(admins...), packageController.DeletePackage)
			packages.PUT("/:id/services", utils.RequireRoles(admins...), packageController.SetPackageServices)
		}

		packageServices := api.Group("/package-services")
		{
			packageServices.POST("", utils.RequireRoles(admins...), packageServiceController.CreatePackageService)
			packageServices.GET("", utils.RequireRoles(everyone...), packageServiceController.GetPackageServices)
			packageServices.PUT("/:id", utils.RequireRoles(admins...), packageServiceController.UpdatePackageService)
			packageServices.DELETE("/:id", utils.RequireRoles(admins...), packageServiceController.DeletePackageService)
		}

		employees := api.Group("/employees")
		{
			employees.POST("", utils.RequireRoles(staff...), employeeController.CreateEmployee)
			employees.GET("", utils.RequireRoles(everyone...), employeeController.GetEmployees)
			employees.PUT("/:id", utils.RequireRoles(staff...), employeeController.UpdateEmployee)
			employees.DELETE("/:id", utils.RequireRoles(staff...), employeeController.DeleteEmployee)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", utils.RequireRoles(staff...), expenseController.CreateExpense)
			expenses.GET("", utils.RequireRoles(staff...), expenseController.GetExpenses)
		}

		advances := api.Group("/advances")
		{
			advances.POST("", utils.RequireRoles(staff...), advanceController.CreateAdvance)
			advances.GET("", utils.RequireRoles(staff...), advanceController.GetAdvances)
		}

		api.GET("/worker-points", utils.RequireRoles(workers...), workerPointsController.GetPointsHistory)

		reports := api.Group("/reports")
		{
			reports.GET("/daily", utils.RequireRoles(staff...), reportController.GetDailyReport)
			reports.GET("/employees", utils.RequireRoles(staff...), reportController.GetEmployeeReport)
		}
	}

	return r
}
