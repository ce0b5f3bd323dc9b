package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mcruz-dev/takeout-backoffice/internal/combo"
	"github.com/mcruz-dev/takeout-backoffice/internal/config"
	"github.com/mcruz-dev/takeout-backoffice/internal/dish"
	"github.com/mcruz-dev/takeout-backoffice/internal/employee"
	"github.com/mcruz-dev/takeout-backoffice/internal/httpx"
	"github.com/mcruz-dev/takeout-backoffice/internal/report"
)

func main() {
	cfg := config.Load()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		logger.Fatalw("connect postgres", "error", err)
	}
	defer pool.Close()

	comboRepo := combo.NewPGRepo(pool)
	dishSvc := dish.NewService(dish.NewPGRepo(pool), comboRepo, logger)
	comboSvc := combo.NewService(comboRepo, logger)
	reportSvc := report.NewService(report.NewPGRepo(pool), logger)
	employeeSvc := employee.NewService(employee.NewPGRepo(pool), cfg.JWTSecret, logger)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger), httpx.Operator())
	registerAdminRoutes(r, dishSvc, comboSvc, reportSvc, employeeSvc)

	logger.Infow("admin-service listening", "addr", cfg.AdminSvcAddr)
	if err := r.Run(cfg.AdminSvcAddr); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func registerAdminRoutes(r *gin.Engine, dishSvc *dish.Service, comboSvc *combo.Service, reportSvc *report.Service, employeeSvc *employee.Service) {
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	admin := r.Group("/admin")

	admin.POST("/employee/login", loginHandler(employeeSvc))
	admin.POST("/employee", createEmployeeHandler(employeeSvc))
	admin.PUT("/employee/:id", updateEmployeeHandler(employeeSvc))
	admin.POST("/employee/:id/status/:status", employeeStatusHandler(employeeSvc))
	admin.GET("/employee/:id", getEmployeeHandler(employeeSvc))

	admin.POST("/dish", createDishHandler(dishSvc))
	admin.PUT("/dish/:id", updateDishHandler(dishSvc))
	admin.DELETE("/dish", deleteDishesHandler(dishSvc))
	admin.GET("/dish/:id", getDishHandler(dishSvc))
	admin.GET("/dish", listDishesHandler(dishSvc))
	admin.POST("/dish/:id/status/:status", dishStatusHandler(dishSvc))

	admin.POST("/combo", createComboHandler(comboSvc))
	admin.PUT("/combo/:id", updateComboHandler(comboSvc))
	admin.DELETE("/combo", deleteCombosHandler(comboSvc))
	admin.GET("/combo/:id", getComboHandler(comboSvc))
	admin.POST("/combo/:id/status/:status", comboStatusHandler(comboSvc))

	admin.GET("/report/turnover", turnoverHandler(reportSvc))
	admin.GET("/report/users", userReportHandler(reportSvc))
	admin.GET("/report/orders", orderReportHandler(reportSvc))
	admin.GET("/report/top10", salesTop10Handler(reportSvc))
}
