package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayinn/internal/config"
	"stayinn/internal/database"
	"stayinn/internal/gateway/stripe"
	"stayinn/internal/middleware"
	"stayinn/internal/modules/auth"
	"stayinn/internal/modules/booking"
	"stayinn/internal/modules/hotel"
	"stayinn/internal/modules/inventory"
	"stayinn/internal/modules/notification"
	"stayinn/internal/modules/payment"
	jwtsvc "stayinn/internal/pkg/jwt"
	"stayinn/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("level=info msg=no .env file loaded err=%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	inventoryRepo := repository.NewRoomInventoryRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := notification.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	hotelService := hotel.NewService(hotelRepo)
	hotelHandler := hotel.NewHandler(hotelService)

	ledger := inventory.NewService(inventoryRepo)

	bookingService := booking.NewService(bookingRepo, ledger, hotelRepo, hub,
		booking.WithTaxRate(cfg.TaxRate),
		booking.WithLateCheckIn(cfg.AllowLateCheckIn),
	)
	bookingHandler := booking.NewHandler(bookingService, hub)

	gateway := stripe.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.StripeBaseURL)
	paymentService := payment.NewService(bookingRepo, gateway, hub, cfg.Currency, bookingService.Policy(), log.Printf)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	notificationHandler := notification.NewHandler(hub)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		hotelHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)
		notificationHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)

			owners := protected.Group("/")
			owners.Use(middleware.RequireRole("hotel_owner", "admin"))
			{
				hotelHandler.RegisterProtectedRoutes(owners)
			}
		}
	}

	log.Printf("level=info msg=listening addr=%s env=%s", cfg.HTTPAddr, cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
