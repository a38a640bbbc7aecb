package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pasar/internal/handlers"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
	"pasar/pkg/rabbitmq"
)

const eventExchange = "pasar.events"

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "pasar.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.Cart{},
		&models.Wishlist{},
		&models.Order{},
		&models.ReturnRequest{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Without a broker URL the store runs fine; events are skipped.
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL, Exchange: eventExchange})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			err := mqClient.Consume(eventExchange, "order_events", "order.*", func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}()
	} else {
		log.Println("RABBITMQ_URL not set; event publication disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	returnRepo := repositories.NewGORMReturnRepository(db)

	// Seed the demo catalog and admin account on first run.
	if err := seedStore(productRepo, userRepo); err != nil {
		log.Printf("Error seeding store: %v", err)
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	productService := services.NewProductService(productRepo, reviewRepo)
	cartService := services.NewCartService(cartRepo, wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo, userRepo, publisher)
	returnService := services.NewReturnService(returnRepo, orderRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, authService)
	cartHandler := handlers.NewCartHandler(cartService, authService)
	orderHandler := handlers.NewOrderHandler(orderService, returnService, authService)
	adminHandler := handlers.NewAdminHandler(productService, orderService, returnService, authService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	adminHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM handle for the configured driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// seedStore populates the catalog and creates the admin account when
// the store is empty.
func seedStore(productRepo repositories.ProductRepository, userRepo repositories.UserRepository) error {
	n, err := productRepo.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:          "Premium Wireless Headphones",
			Description:   "High-quality noise-cancelling headphones with 30-hour battery life",
			Price:         2999.00,
			OriginalPrice: 4999.00,
			Category:      "Electronics",
			Brand:         "SoundPro",
			Images:        []string{"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"},
			Stock:         50,
			Rating:        4.5,
			ReviewsCount:  120,
		},
		{
			Name:          "Smart Fitness Watch",
			Description:   "Track your health and fitness with GPS and heart rate monitoring",
			Price:         1499.00,
			OriginalPrice: 2499.00,
			Category:      "Electronics",
			Brand:         "FitTech",
			Images:        []string{"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500"},
			Stock:         100,
			Rating:        4.3,
			ReviewsCount:  85,
		},
		{
			Name:         "Leather Laptop Bag",
			Description:  "Professional leather bag with multiple compartments",
			Price:        3499.00,
			Category:     "Fashion",
			Brand:        "UrbanStyle",
			Images:       []string{"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500"},
			Stock:        30,
			Rating:       4.7,
			ReviewsCount: 65,
		},
		{
			Name:          "Running Shoes",
			Description:   "Comfortable running shoes with excellent cushioning",
			Price:         2499.00,
			OriginalPrice: 3999.00,
			Category:      "Fashion",
			Brand:         "RunMax",
			Images:        []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500"},
			Stock:         75,
			Rating:        4.6,
			ReviewsCount:  200,
		},
		{
			Name:         "Coffee Maker Machine",
			Description:  "Programmable coffee maker with thermal carafe",
			Price:        4999.00,
			Category:     "Home & Kitchen",
			Brand:        "BrewMaster",
			Images:       []string{"https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?w=500"},
			Stock:        40,
			Rating:       4.4,
			ReviewsCount: 95,
		},
		{
			Name:         "Yoga Mat Premium",
			Description:  "Non-slip yoga mat with carrying strap",
			Price:        899.00,
			Category:     "Sports",
			Brand:        "ZenFit",
			Images:       []string{"https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500"},
			Stock:        150,
			Rating:       4.8,
			ReviewsCount: 180,
		},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:        "admin@shop.com",
		Name:         "Admin User",
		Phone:        "1234567890",
		PasswordHash: string(hash),
		Addresses:    []models.Address{},
		IsAdmin:      true,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Error seeding admin user: %v", err)
	} else {
		log.Printf("Seeded admin user: %s", admin.Email)
	}

	return nil
}
