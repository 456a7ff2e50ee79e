package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"twibbon-backend/internal/config"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/handlers"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/supabase"
	"twibbon-backend/internal/web"
)

func main() {
	// .env is a development convenience; absent in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()

	if err := database.NewMigrator(dbClient).Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	authHandler := handlers.NewAuthHandler(cfg, dbClient)
	campaignsHandler := handlers.NewCampaignsHandler(dbClient, storageClient)
	resultsHandler := handlers.NewResultsHandler(dbClient, storageClient)
	downloadsHandler := handlers.NewDownloadsHandler(dbClient)
	dashboardHandler := handlers.NewDashboardHandler(dbClient, storageClient)
	slidesHandler := handlers.NewSlidesHandler(dbClient, storageClient)

	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20
	router.SetHTMLTemplate(web.Templates())
	router.Use(middleware.CurrentUser(cfg, dbClient))

	router.GET("/health", handlers.HealthHandler)

	// Public pages and JSON endpoints
	router.GET("/", campaignsHandler.Home)
	router.GET("/explore/", campaignsHandler.Explore)
	router.GET("/campaign/:slug/", campaignsHandler.Detail)
	router.POST("/campaign/:slug/download/", downloadsHandler.Increment)
	router.POST("/campaign/:slug/save/", resultsHandler.Save)
	router.GET("/result/:uuid/", resultsHandler.View)
	router.GET("/my-results/", resultsHandler.MyResults)

	// Accounts
	router.GET("/register/", authHandler.RegisterForm)
	router.POST("/register/", authHandler.Register)
	router.GET("/login/", authHandler.LoginForm)
	router.POST("/login/", authHandler.Login)
	router.GET("/logout/", authHandler.Logout)
	router.POST("/logout/", authHandler.Logout)

	// Authenticated users. The edit routes additionally enforce
	// owner-or-staff inside the handler once the campaign is loaded.
	authed := router.Group("/", middleware.RequireLogin())
	authed.GET("/create/", campaignsHandler.CreateForm)
	authed.POST("/create/", campaignsHandler.Create)
	authed.GET("/my-campaigns/", campaignsHandler.MyCampaigns)
	authed.GET("/accounts/profile/", authHandler.Profile)
	authed.GET("/campaign/:slug/edit/", campaignsHandler.EditForm)
	authed.POST("/campaign/:slug/edit/", campaignsHandler.Edit)

	// Staff only
	staff := router.Group("/", middleware.RequireStaff())
	staff.GET("/campaign/:slug/delete/", campaignsHandler.DeleteConfirm)
	staff.POST("/campaign/:slug/delete/", campaignsHandler.Delete)
	staff.GET("/dashboard/", dashboardHandler.Dashboard)
	staff.GET("/dashboard/settings/", dashboardHandler.SettingsForm)
	staff.POST("/dashboard/settings/", dashboardHandler.SettingsUpdate)
	staff.GET("/dashboard/slides/", slidesHandler.List)
	staff.GET("/dashboard/slides/add/", slidesHandler.CreateForm)
	staff.POST("/dashboard/slides/add/", slidesHandler.Create)
	staff.GET("/dashboard/slides/edit/:id/", slidesHandler.EditForm)
	staff.POST("/dashboard/slides/edit/:id/", slidesHandler.Edit)
	staff.GET("/dashboard/slides/delete/:id/", slidesHandler.DeleteConfirm)
	staff.POST("/dashboard/slides/delete/:id/", slidesHandler.Delete)
	staff.GET("/dashboard/results/", resultsHandler.DashboardList)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
