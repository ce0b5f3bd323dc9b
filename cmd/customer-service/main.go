package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mcruz-dev/takeout-backoffice/internal/cart"
	"github.com/mcruz-dev/takeout-backoffice/internal/combo"
	"github.com/mcruz-dev/takeout-backoffice/internal/config"
	"github.com/mcruz-dev/takeout-backoffice/internal/dish"
	"github.com/mcruz-dev/takeout-backoffice/internal/httpx"
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

	dishRepo := dish.NewPGRepo(pool)
	comboRepo := combo.NewPGRepo(pool)
	dishSvc := dish.NewService(dishRepo, comboRepo, logger)
	comboSvc := combo.NewService(comboRepo, logger)
	cartSvc := cart.NewService(cart.NewPGRepo(pool), dishRepo, comboRepo, logger)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger))
	registerCustomerRoutes(r, dishSvc, comboSvc, cartSvc)

	logger.Infow("customer-service listening", "addr", cfg.CustomerSvcAddr)
	if err := r.Run(cfg.CustomerSvcAddr); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func registerCustomerRoutes(r *gin.Engine, dishSvc *dish.Service, comboSvc *combo.Service, cartSvc *cart.Service) {
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	shop := r.Group("/shop")
	shop.GET("/dishes", browseDishesHandler(dishSvc))
	shop.GET("/combos", browseCombosHandler(comboSvc))
	shop.GET("/combos/:id/dishes", comboDishesHandler(comboSvc))

	shop.POST("/cart/:user_id", addToCartHandler(cartSvc))
	shop.GET("/cart/:user_id", listCartHandler(cartSvc))
	shop.DELETE("/cart/:user_id", clearCartHandler(cartSvc))
	shop.DELETE("/cart/:user_id/lines/:line_id", removeLineHandler(cartSvc))
}
