package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/servihub/marketplace-api/internal/config"
	"github.com/servihub/marketplace-api/internal/database"
	"github.com/servihub/marketplace-api/internal/handlers"
	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/models"
	"github.com/servihub/marketplace-api/internal/services"
	"github.com/servihub/marketplace-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := config.Load()
	log.Printf("MONGO_DATABASE: %s", cfg.MongoDatabase)
	log.Printf("API_PORT: %s", cfg.APIPort)
	if cfg.JWTSecret != "" {
		log.Println("JWT_SECRET is SET.")
	} else {
		log.Println("JWT_SECRET is NOT SET.")
	}
	utils.ConfigureJWT(cfg.JWTSecret)

	// --- Database Connection ---
	connector := database.NewConnector(cfg.MongoURI, cfg.MongoDatabase)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := connector.Get(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		connector.Close(ctx)
	}()
	log.Println("Successfully connected to MongoDB!")

	// --- Initialize Services ---
	uploader, err := services.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		log.Fatalf("Failed to configure Cloudinary: %v", err)
	}
	fare := services.NewTableFareEstimator()
	identity := services.NewFirebaseVerifier(cfg.FirebaseAPIKey, cfg.FirebaseAllowUnverified)

	// --- Initialize Handlers with DB and Services ---
	h := handlers.NewHandler(db, uploader, fare, identity)

	// --- Gin Router ---
	r := gin.Default()

	// ---  Middleware ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/google", h.GoogleAuth)
		authRoutes.POST("/sync", h.SyncFirebaseUser)
		authRoutes.GET("/user", h.GetFirebaseUser)
		authRoutes.PUT("/user", h.UpdateFirebaseUser)
		authRoutes.PUT("/role", h.UpdateUserRole)
	}

	hotelRoutes := r.Group("/api/hotels")
	{
		hotelRoutes.POST("/book", h.BookHotel)
		hotelRoutes.GET("/bookings", h.GetBookings)
		hotelRoutes.GET("/bookings/:id", h.GetBookingByID)
		hotelRoutes.PUT("/bookings/:id/cancel", h.CancelBooking)

		hotelRoutes.POST("/add", h.AddHotel)
		hotelRoutes.GET("", h.GetHotels)
		hotelRoutes.GET("/:id", h.GetHotelByID)
		hotelRoutes.PUT("/:id", h.UpdateHotel)
		hotelRoutes.DELETE("/:id", h.DeleteHotel)

		hotelRoutes.GET("/:id/rooms", h.GetHotelRooms)
		hotelRoutes.POST("/:id/rooms", h.AddHotelRoom)
		hotelRoutes.PUT("/:id/rooms/:roomId", h.UpdateHotelRoom)
		hotelRoutes.DELETE("/:id/rooms/:roomId", h.DeleteHotelRoom)
	}

	cleaningRoutes := r.Group("/api/cleaning")
	{
		cleaningRoutes.POST("/add", h.AddCleaning)
		cleaningRoutes.GET("", h.GetCleanings)
		cleaningRoutes.GET("/:id", h.GetCleaningByID)
		cleaningRoutes.PUT("/:id", h.UpdateCleaning)
		cleaningRoutes.DELETE("/:id", h.DeleteCleaning)
	}

	cabRoutes := r.Group("/api/cab-services")
	{
		cabRoutes.POST("/add", h.AddCabService)
		cabRoutes.GET("", h.GetCabServices)
		cabRoutes.GET("/:id", h.GetCabServiceByID)
		cabRoutes.PUT("/:id", h.UpdateCabService)
		cabRoutes.DELETE("/:id", h.DeleteCabService)
	}

	r.POST("/api/book-ride", h.BookRide)

	providerRoutes := r.Group("/api/providers")
	{
		// Specific paths before parameterized ones.
		providerRoutes.POST("/add", h.AddProvider)
		providerRoutes.POST("/add-service", h.AddServiceToProvider)
		providerRoutes.POST("/remove-service", h.RemoveServiceFromProvider)
		providerRoutes.GET("", h.GetProviders)
		providerRoutes.GET("/:id", h.GetProviderByID)
		providerRoutes.GET("/:id/services/all", h.GetProviderAllServices)
		providerRoutes.PUT("/:id", h.UpdateProvider)
		providerRoutes.DELETE("/:id", h.DeleteProvider)
	}

	contactRoutes := r.Group("/api/contacts")
	{
		contactRoutes.POST("", h.CreateContact)
		contactRoutes.GET("", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), h.GetContacts)
	}

	homeBannerRoutes := r.Group("/api/home-banners")
	{
		homeBannerRoutes.POST("", h.AddHomeBanner)
		homeBannerRoutes.GET("", h.GetHomeBanners)
		homeBannerRoutes.GET("/:id", h.GetHomeBannerByID)
		homeBannerRoutes.PUT("/:id", h.UpdateHomeBanner)
		homeBannerRoutes.DELETE("/:id", h.DeleteHomeBanner)
	}

	cleaningBannerRoutes := r.Group("/api/cleaning-banners")
	{
		cleaningBannerRoutes.POST("", h.AddCleaningBanner)
		cleaningBannerRoutes.GET("", h.GetCleaningBanners)
		cleaningBannerRoutes.GET("/:id", h.GetCleaningBannerByID)
		cleaningBannerRoutes.PUT("/:id", h.UpdateCleaningBanner)
		cleaningBannerRoutes.DELETE("/:id", h.DeleteCleaningBanner)
	}

	userRoutes := r.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleSuperAdmin))
	{
		userRoutes.GET("/stats", h.GetUserStats)
		userRoutes.GET("", h.GetUsers)
		userRoutes.GET("/:id", h.GetUserByID)
		userRoutes.PUT("/:id", h.UpdateUser)
		userRoutes.DELETE("/:id", h.DeleteUser)
	}

	r.GET("/api/settings", h.GetSettings)
	r.PUT("/api/settings", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleSuperAdmin), h.UpdateSettings)

	log.Printf("Starting server on port %s", cfg.APIPort)
	r.Run(":" + cfg.APIPort)
}
