package main

import (
	"context"
	"log"
	"os"
	"time"

	"smartcart/internal/artifact"
	"smartcart/internal/auth"
	"smartcart/internal/catalog"
	"smartcart/internal/db"
	"smartcart/internal/evaluate"
	"smartcart/internal/ingest"
	"smartcart/internal/middleware"
	"smartcart/internal/recommend"

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
		"ORDER_DATA_PATH",
		"TEST_DATA_PATH",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
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
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	bundleStore, err := artifact.NewR2Store(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── ENGINE CONFIG ─────────────────────────
	rules := catalog.DefaultRules()
	if path := os.Getenv("RULES_CONFIG_PATH"); path != "" {
		rules, err = catalog.LoadRules(path)
		if err != nil {
			log.Fatal("❌ Rules config failed:", err)
		}
	}

	engineCfg := recommend.DefaultEngineConfig()
	if path := os.Getenv("ENGINE_CONFIG_PATH"); path != "" {
		engineCfg, err = recommend.LoadEngineConfig(path)
		if err != nil {
			log.Fatal("❌ Engine config failed:", err)
		}
	}

	// ───────────────────────── AUTH ─────────────────────────
	operatorRepo := auth.NewPostgresOperatorRepository(pgDB)
	authService := auth.NewService(operatorRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CORE SERVICES ─────────────────────────
	runRepo := artifact.NewPostgresRunRepository(pgDB)

	recommendService := recommend.NewService(rules, engineCfg, runRepo, bundleStore)
	evaluateService := evaluate.NewService(recommendService, runRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	recommendHandler := recommend.NewHandler(
		recommendService,
		os.Getenv("ORDER_DATA_PATH"),
		os.Getenv("ORDER_DATA_COLUMN"),
	)
	evaluateHandler := evaluate.NewHandler(
		evaluateService,
		os.Getenv("TEST_DATA_PATH"),
		ingest.DefaultCartColumn,
		ingest.DefaultTruthColumn,
	)
	artifactHandler := artifact.NewHandler(runRepo, bundleStore, recommendService)

	// ───────────────────────── PUBLIC ROUTES ─────────────────────────
	r.POST("/recommendations", recommendHandler.Recommend)
	r.GET("/model/status", recommendHandler.Status)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleOperator, auth.RoleAdmin),
	)
	{
		admin.POST("/model/build", recommendHandler.Build)
		admin.POST("/model/load", artifactHandler.LoadModel)
		admin.POST("/model/evaluate", evaluateHandler.Run)
		admin.GET("/model/runs", artifactHandler.ListRuns)
	}

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 SmartCart API listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
