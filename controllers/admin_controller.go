package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavymachinery/backend/services"
)

// AdminController handles the back-office routes: reporting, inventory
// export, loyal customers and order status management.
type AdminController struct {
	adminService *services.AdminService
	userService  *services.UserService
}

func NewAdminController(adminService *services.AdminService, userService *services.UserService) *AdminController {
	return &AdminController{adminService: adminService, userService: userService}
}

// MonthlySales handles GET /admin/stats/monthly-sales.
func (ac *AdminController) MonthlySales(ctx *gin.Context) {
	report, svcErr := ac.adminService.MonthlySales(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// Inventory handles GET /admin/stats/inventory.
func (ac *AdminController) Inventory(ctx *gin.Context) {
	items, svcErr := ac.adminService.Inventory(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"inventory": items})
}

// ExportOrders handles GET /admin/export/orders.csv.
func (ac *AdminController) ExportOrders(ctx *gin.Context) {
	payload, svcErr := ac.adminService.OrdersCSV(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename=orders.csv")
	ctx.Data(http.StatusOK, "text/csv", payload)
}

// AllOrders handles GET /admin/orders.
func (ac *AdminController) AllOrders(ctx *gin.Context) {
	orders, svcErr := ac.adminService.AllOrders(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status.
func (ac *AdminController) UpdateOrderStatus(ctx *gin.Context) {
	var req services.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := ac.adminService.UpdateOrderStatus(ctx.Request.Context(), ctx.Param("id"), req.Status); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

// LoyalCustomers handles GET /users/loyal (admin only).
func (ac *AdminController) LoyalCustomers(ctx *gin.Context) {
	users, svcErr := ac.userService.LoyalCustomers(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customers": users})
}
