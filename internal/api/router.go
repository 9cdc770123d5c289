package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/config"
	"github.com/tripfolio/tripfolio-backend-go/internal/database"
	"github.com/tripfolio/tripfolio-backend-go/internal/handler"
	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/provider"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
)

// Services bundles the service layer for the router and for background
// workers started by main
type Services struct {
	Category   *service.CategoryService
	Place      *service.PlaceService
	Trip       *service.TripService
	Share      *service.ShareService
	Packing    *service.PackingService
	Settings   *service.SettingsService
	Backup     *service.BackupService
	Attachment *service.AttachmentService
	Completion *service.CompletionService
}

// BuildServices wires repositories and providers into the service layer
func BuildServices(cfg *config.Config) *Services {
	db := database.GetDB()

	categoryRepo := repository.NewCategoryRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	tripRepo := repository.NewTripRepository(db)
	dayRepo := repository.NewTripDayRepository(db)
	shareRepo := repository.NewShareRepository(db)
	packingRepo := repository.NewPackingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	backupRepo := repository.NewBackupRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	tripService := service.NewTripService(tripRepo, dayRepo)
	attachmentService := service.NewAttachmentService(attachmentRepo, tripService, cfg.AttachmentDir)

	return &Services{
		Category:   service.NewCategoryService(categoryRepo),
		Place:      service.NewPlaceService(placeRepo, settingsRepo),
		Trip:       tripService,
		Share:      service.NewShareService(shareRepo, tripRepo, packingRepo, attachmentService, cfg.ShareBaseURL),
		Packing:    service.NewPackingService(packingRepo, tripService),
		Settings:   service.NewSettingsService(settingsRepo),
		Backup:     service.NewBackupService(backupRepo, placeRepo, tripRepo, settingsRepo, cfg.BackupDir),
		Attachment: attachmentService,
		Completion: service.NewCompletionService(
			provider.NewNominatimClient(cfg.NominatimURL),
			provider.NewOSRMClient(cfg.OSRMURL),
		),
	}
}

// SetupRouter builds the HTTP router
func SetupRouter(cfg *config.Config, services *Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Tripfolio API is running",
		})
	})

	categoryHandler := handler.NewCategoryHandler(services.Category)
	placeHandler := handler.NewPlaceHandler(services.Place)
	tripHandler := handler.NewTripHandler(services.Trip)
	shareHandler := handler.NewShareHandler(services.Share)
	packingHandler := handler.NewPackingHandler(services.Packing)
	settingsHandler := handler.NewSettingsHandler(services.Settings)
	backupHandler := handler.NewBackupHandler(services.Backup)
	attachmentHandler := handler.NewAttachmentHandler(services.Attachment)
	completionHandler := handler.NewCompletionHandler(services.Completion)

	// Public shared trip views; the token is the only credential
	r.GET("/shared/:token", shareHandler.GetSharedTrip)
	r.GET("/shared/:token/packing", shareHandler.GetSharedPacking)
	r.GET("/shared/:token/checklist", shareHandler.GetSharedChecklist)
	r.GET("/shared/:token/attachments/:attachmentId", shareHandler.DownloadSharedAttachment)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		places := api.Group("/places")
		{
			places.GET("", placeHandler.GetPlaces)
			places.POST("", placeHandler.CreatePlace)
			places.POST("/check-duplicate", placeHandler.CheckDuplicate)
			places.GET("/:id", placeHandler.GetPlaceByID)
			places.PUT("/:id", placeHandler.UpdatePlace)
			places.DELETE("/:id", placeHandler.DeletePlace)
		}

		trips := api.Group("/trips")
		{
			trips.GET("", tripHandler.GetTrips)
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("/:id", tripHandler.GetTripByID)
			trips.PUT("/:id", tripHandler.UpdateTrip)
			trips.DELETE("/:id", tripHandler.DeleteTrip)

			trips.GET("/:id/view", tripHandler.GetViewModel)
			trips.GET("/:id/highlight", tripHandler.GetHighlight)
			trips.GET("/:id/balances", tripHandler.GetBalances)
			trips.GET("/:id/unplanned-places", tripHandler.GetUnplannedPlaces)

			trips.POST("/:id/days", tripHandler.CreateDay)
			trips.PUT("/:id/days/:dayId", tripHandler.UpdateDay)
			trips.DELETE("/:id/days/:dayId", tripHandler.DeleteDay)
			trips.POST("/:id/days/:dayId/items", tripHandler.CreateItem)
			trips.PUT("/:id/items/:itemId", tripHandler.UpdateItem)
			trips.DELETE("/:id/items/:itemId", tripHandler.DeleteItem)

			trips.POST("/:id/share", shareHandler.ShareTrip)
			trips.GET("/:id/share", shareHandler.GetShareURL)
			trips.DELETE("/:id/share", shareHandler.UnshareTrip)
			trips.POST("/:id/members", shareHandler.InviteMember)
			trips.DELETE("/:id/members/:user", shareHandler.RemoveMember)

			trips.GET("/:id/packing", packingHandler.GetPackingItems)
			trips.POST("/:id/packing", packingHandler.CreatePackingItem)
			trips.PUT("/:id/packing/:itemId", packingHandler.UpdatePackingItem)
			trips.DELETE("/:id/packing/:itemId", packingHandler.DeletePackingItem)
			trips.GET("/:id/checklist", packingHandler.GetChecklistItems)
			trips.POST("/:id/checklist", packingHandler.CreateChecklistItem)
			trips.PUT("/:id/checklist/:itemId", packingHandler.UpdateChecklistItem)
			trips.DELETE("/:id/checklist/:itemId", packingHandler.DeleteChecklistItem)

			trips.POST("/:id/attachments", attachmentHandler.Upload)
			trips.GET("/:id/attachments/:attachmentId", attachmentHandler.Download)
			trips.DELETE("/:id/attachments/:attachmentId", attachmentHandler.Delete)
			trips.POST("/:id/items/:itemId/attachments/:attachmentId", attachmentHandler.LinkToItem)
			trips.DELETE("/:id/items/:itemId/attachments/:attachmentId", attachmentHandler.UnlinkFromItem)
		}

		invitations := api.Group("/invitations")
		{
			invitations.GET("", shareHandler.GetInvitations)
			invitations.POST("/:id/accept", shareHandler.AcceptInvite)
			invitations.POST("/:id/decline", shareHandler.DeclineInvite)
		}

		settings := api.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.UpdateSettings)
		}

		backups := api.Group("/backups")
		{
			backups.GET("", backupHandler.GetBackups)
			backups.POST("", backupHandler.CreateBackup)
			backups.GET("/:id", backupHandler.GetBackup)
			backups.GET("/:id/download", backupHandler.DownloadBackup)
			backups.DELETE("/:id", backupHandler.DeleteBackup)
		}

		// Provider-backed lookups get a tighter rate limit
		completions := api.Group("/completions")
		completions.Use(middleware.RateLimit(30, time.Minute))
		{
			completions.GET("/search", completionHandler.SearchPlaces)
			completions.POST("/takeout-import", completionHandler.ImportTakeout)
			completions.POST("/kml-import", completionHandler.ImportKML)
			completions.GET("/route", completionHandler.GetRoute)
		}
	}

	return r
}
