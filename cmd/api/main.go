package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/db"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/discovery"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/kitchen"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/menu"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/middleware"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	kitchenRepo := kitchen.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	kitchenService := kitchen.NewService(kitchenRepo, r2Client)
	menuService := menu.NewService(menuRepo, kitchenRepo)

	// One engine feeds every discovery route; the cook-facing and
	// buyer-facing groups share it.
	engine := discovery.NewEngine(kitchenRepo, menuRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	kitchenHandler := kitchen.NewHandler(kitchenService)
	adminKitchenHandler := kitchen.NewAdminHandler(kitchenService)
	menuHandler := menu.NewHandler(menuService)
	discoveryHandler := discovery.NewHandler(engine)

	// ───────────────────────── PUBLIC DISCOVERY ─────────────────────────
	r.GET("/kitchens/search", discoveryHandler.SearchKitchens)
	r.GET("/kitchens/nearby", discoveryHandler.NearbyKitchens)
	r.GET("/kitchens/:id", kitchenHandler.Get)
	r.GET("/kitchens/:id/menus", menuHandler.ListByKitchen)
	r.GET("/menus/today", discoveryHandler.TodayMenus)
	r.GET("/dishes/search", discoveryHandler.SearchDishes)
	r.GET("/dishes/trending", discoveryHandler.TrendingDishes)

	// ───────────────────────── COOK ROUTES ─────────────────────────
	cook := r.Group("/kitchens")
	cook.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("cook"),
	)
	{
		cook.POST("", kitchenHandler.Register)
		cook.GET("/me", kitchenHandler.GetMine)
		cook.PUT("/:id", kitchenHandler.Update)
		cook.POST("/:id/photos", kitchenHandler.UploadPhotos)
		cook.DELETE("/:id", kitchenHandler.Deactivate)

		cook.POST("/:id/menus", menuHandler.Create)
		cook.POST("/:id/menus/copy-yesterday", menuHandler.CopyYesterday)
		cook.PUT("/menus/:menuId", menuHandler.Update)
		cook.PATCH("/menus/:menuId/dishes/:dishId/status", menuHandler.ToggleDishStatus)
		cook.PATCH("/menus/:menuId/dishes/:dishId/quantity", menuHandler.DecrementDishQuantity)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("admin"),
	)
	{
		admin.POST("/kitchens/:id/approve", adminKitchenHandler.Approve)
		admin.POST("/kitchens/:id/reject", adminKitchenHandler.Reject)
		admin.POST("/kitchens/:id/suspend", adminKitchenHandler.Suspend)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("🚀 API running at http://localhost:%s", port)
	r.Run(":" + port)
}
