package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"warung-backend/config"
	"warung-backend/database"
	"warung-backend/handlers"
	"warung-backend/middleware"
	"warung-backend/repositories"
	"warung-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {

	// 加载配置
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		panic(err)
	}

	// 初始化本地快照库（localStorage 的角色）
	db, err := database.InitDB(cfg.Database.Path)
	if err != nil {
		panic(err)
	}

	// 初始化 Repositories
	menuRepo, err := repositories.NewMenuRepositoryFromFile(cfg.Catalog.Path)
	if err != nil {
		panic(err)
	}
	snapshotRepo := repositories.NewSnapshotRepository(db)

	hub := services.NewHub()
	go hub.Run()

	// 业务服务
	cartService := services.NewCartService(snapshotRepo)
	favoritesService := services.NewFavoritesService(snapshotRepo)
	shopService, err := services.NewShopService(cfg.Shop, snapshotRepo, hub)
	if err != nil {
		panic(err)
	}

	// 营业状态机：进程退出时随 ctx 取消，定时器不泄漏
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	shopService.Start(ctx)

	// 初始化 Handlers (注入 Repo / Service)
	menuHandler := handlers.NewMenuHandler(menuRepo, cartService)
	cartHandler := handlers.NewCartHandler(cartService, menuRepo)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService, menuRepo)
	shopHandler := handlers.NewShopHandler(shopService, cfg.Shop)
	checkoutHandler := handlers.NewCheckoutHandler(cartService, shopService, cfg.Shop)
	authHandler := handlers.NewAuthHandler(db, cfg.Auth)

	// 注册路由
	r := gin.Default()
	r.Static("/static", cfg.Server.StaticDir)
	v1 := r.Group("/api/v1")
	{
		// 菜单（只读目录）
		v1.GET("/menu", menuHandler.GetMenu)
		v1.GET("/menu/:id", menuHandler.GetMenuItem)
		v1.GET("/best-sellers", menuHandler.GetBestSellers)
		v1.GET("/cheapest", menuHandler.GetCheapest)

		// 购物车（按 X-Session-ID 隔离）
		v1.GET("/cart", cartHandler.GetCart)
		v1.POST("/cart/items", cartHandler.AddItem)
		v1.PUT("/cart/items/:id", cartHandler.EditItem)
		v1.PATCH("/cart/items/:id/quantity", cartHandler.UpdateQuantity)
		v1.PATCH("/cart/items/:id/notes", cartHandler.UpdateNotes)
		v1.DELETE("/cart/items/:id", cartHandler.RemoveItem)
		v1.DELETE("/cart", cartHandler.ClearCart)

		// 收藏夹
		v1.GET("/favorites", favoritesHandler.List)
		v1.POST("/favorites/toggle", favoritesHandler.Toggle)
		v1.DELETE("/favorites/:id", favoritesHandler.Remove)
		v1.DELETE("/favorites", favoritesHandler.Clear)

		// 营业状态与结账
		v1.GET("/shop/status", shopHandler.GetStatus)
		v1.POST("/checkout", checkoutHandler.Checkout)

		// 店主账号
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// 营业状态管理接口，要求店主登录
		admin := v1.Group("/shop", middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		{
			admin.PUT("/override", shopHandler.SetOverride)
			admin.PUT("/force-closed", shopHandler.SetForceClosed)
			admin.PUT("/notice", shopHandler.SetNotice)
		}

		// WebSocket：营业状态实时推送
		v1.GET("/ws", func(c *gin.Context) {
			handlers.ServeWs(hub, shopService, c)
		})
	}
	_ = r.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}
