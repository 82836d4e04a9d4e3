package routes

import (
	"arco-factory-manager/controllers"
	"arco-factory-manager/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/auth/login", controllers.Login)

		auth := api.Group("/", middlewares.Auth())
		{
			auth.GET("/profile", controllers.Profile)
			auth.PUT("/profile/password", controllers.ChangePassword)

			items := auth.Group("/items")
			{
				items.GET("/", controllers.GetAllItems)
				items.GET("/:id", controllers.GetItemByID)
				items.POST("/", controllers.CreateItem)
				items.PUT("/:id", controllers.UpdateItem)
				items.DELETE("/:id", controllers.DeleteItem)
			}

			customers := auth.Group("/customers")
			{
				customers.GET("/", controllers.GetAllCustomers)
				customers.GET("/:id", controllers.GetCustomerByID)
				customers.GET("/:id/balance", controllers.CustomerBalance)
				customers.POST("/", controllers.CreateCustomer)
				customers.PUT("/:id", controllers.UpdateCustomer)
				customers.DELETE("/:id", controllers.DeleteCustomer)
			}

			vendors := auth.Group("/vendors")
			{
				vendors.GET("/", controllers.GetAllVendors)
				vendors.GET("/:id", controllers.GetVendorByID)
				vendors.GET("/:id/balance", controllers.VendorBalance)
				vendors.POST("/", controllers.CreateVendor)
				vendors.PUT("/:id", controllers.UpdateVendor)
				vendors.DELETE("/:id", controllers.DeleteVendor)
			}

			sales := auth.Group("/sales")
			{
				sales.GET("/", controllers.GetAllSales)
				sales.GET("/:id", controllers.GetSaleByID)
				sales.POST("/", controllers.CreateSale)
				sales.PUT("/:id", controllers.UpdateSale)
				sales.POST("/:id/post", controllers.PostSale)
				sales.POST("/:id/unpost", controllers.UnpostSale)
				sales.DELETE("/:id", controllers.DeleteSale)
			}

			estimates := auth.Group("/estimates")
			{
				estimates.GET("/", controllers.GetAllEstimates)
				estimates.GET("/:id", controllers.GetEstimateByID)
				estimates.POST("/", controllers.CreateEstimate)
				estimates.PUT("/:id", controllers.UpdateEstimate)
				estimates.POST("/:id/convert", controllers.ConvertEstimateToSale)
				estimates.DELETE("/:id", controllers.DeleteEstimate)
			}

			ledger := auth.Group("/transactions")
			{
				ledger.GET("/", controllers.GetAllTransactions)
				ledger.POST("/", controllers.CreateTransaction)
				ledger.PUT("/:id", controllers.UpdateTransaction)
				ledger.DELETE("/:id", controllers.DeleteTransaction)
			}

			expenses := auth.Group("/expenses")
			{
				expenses.GET("/", controllers.GetAllExpenses)
				expenses.POST("/", controllers.CreateExpense)
				expenses.PUT("/:id", controllers.UpdateExpense)
				expenses.DELETE("/:id", controllers.DeleteExpense)
			}

			rateLists := auth.Group("/ratelists")
			{
				rateLists.GET("/", controllers.GetRateLists)
				rateLists.GET("/:name", controllers.GetRateListPrices)
				rateLists.POST("/batch", controllers.BatchUpdateRateList)
				rateLists.DELETE("/:name", controllers.DeleteRateList)
			}

			labour := auth.Group("/labour")
			{
				labour.GET("/", controllers.GetAllLabour)
				labour.POST("/", controllers.CreateLabour)
				labour.PUT("/:id", controllers.UpdateLabour)
				labour.DELETE("/:id", controllers.DeleteLabour)
			}

			payroll := auth.Group("/payroll")
			{
				payroll.GET("/salaries", controllers.GetSalaryPayments)
				payroll.POST("/salaries", controllers.GenerateSalary)
			}

			reports := auth.Group("/reports")
			{
				reports.GET("/sales", controllers.ReportSales)
				reports.GET("/sales/collative", controllers.ReportCollativeSales)
				reports.GET("/items/top", controllers.ReportTopItems)
			}
		}
	}
}
