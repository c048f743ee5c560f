package app

import (
	"database/sql"

	"go-reqdesk/internal/auth"
	"go-reqdesk/internal/employee"
	"go-reqdesk/internal/messaging/kafka"
	"go-reqdesk/internal/middleware"
	"go-reqdesk/internal/rbac"
	"go-reqdesk/internal/rbac/infra"
	"go-reqdesk/internal/request"
	"go-reqdesk/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewService(db, employeeRepo)
	requestService := request.NewServiceWithOutbox(db, requestRepo, employeeRepo, counterRepo, outboxRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	requestHandler := request.NewHandler(requestService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		request.RegisterRoutes(api, requestHandler, rbacService, rdb)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}
