package request

import (
	"go-reqdesk/internal/account"
	"go-reqdesk/internal/middleware"
	"go-reqdesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "request", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		// Listing everything is an admin view; per-employee reads stay open
		// to the owner through the service-level ownership check
		requests.GET("",
			middleware.RBACAuthorize(rbacService, "request", "read"),
			middleware.RoleMiddleware(account.RoleAdmin),
			handler.GetAll,
		)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetById)
		requests.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetByEmployeeId)
		requests.PUT("/:id", middleware.RBACAuthorize(rbacService, "request", "update"), handler.Update)
		requests.DELETE("/:id", middleware.RBACAuthorize(rbacService, "request", "delete"), handler.Delete)
	}
}
