package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hivaasboutique/hivaas-catalogue/internal/handlers"
	"github.com/hivaasboutique/hivaas-catalogue/internal/middleware"
	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/repositories"
	"github.com/hivaasboutique/hivaas-catalogue/internal/services"
	"github.com/hivaasboutique/hivaas-catalogue/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("CATALOG_SOURCE", "seed") // seed | csv | database
	viper.SetDefault("CATALOG_CSV_PATH", "catalog.csv")
	viper.SetDefault("DATABASE_DRIVER", "sqlite") // sqlite | postgres
	viper.SetDefault("DATABASE_DSN", "catalog.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables inquiry events
	viper.SetDefault("WHATSAPP_NUMBER", "918073879674")
	viper.SetDefault("PAGE_SIZE", 6)
	viper.SetDefault("IMAGE_BASE_DIR", "images")
	viper.SetDefault("PLACEHOLDER_IMAGE", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	var inquiryPublisher services.InquiryPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		inquiryPublisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, inquiry events disabled")
	}

	// --- Initialize Catalog Repository ---
	catalogRepo, err := buildCatalogRepository()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// --- Initialize Services ---
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	browseService := services.NewBrowseService(catalogRepo, viper.GetInt("PAGE_SIZE"), rng)
	sessionService := services.NewSessionService(catalogRepo)
	inquiryService := services.NewInquiryService(catalogRepo, viper.GetString("WHATSAPP_NUMBER"), inquiryPublisher)
	imageService := services.NewImageService(
		services.NewFileImageFetcher(viper.GetString("IMAGE_BASE_DIR")),
		loadPlaceholder(viper.GetString("PLACEHOLDER_IMAGE")),
	)

	// --- Initialize Handlers ---
	catalogHandler := handlers.NewCatalogHandler(browseService)
	sessionHandler := handlers.NewSessionHandler()
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	imageHandler := handlers.NewImageHandler(imageService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Images are shared across sessions and cached by reference.
	imageHandler.RegisterRoutes(apiV1)

	// Everything else is per-session state behind the session middleware.
	sessionRoutes := apiV1.Group("", middleware.SessionRequired(sessionService))
	catalogHandler.RegisterRoutes(sessionRoutes)
	sessionHandler.RegisterRoutes(sessionRoutes)
	inquiryHandler.RegisterRoutes(sessionRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The boutique owner's notification worker: logs each inquiry a
	// visitor hands off to WhatsApp.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for inquiries...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Inquiry Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeInquiryEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
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

// buildCatalogRepository selects the catalog source from configuration.
func buildCatalogRepository() (repositories.CatalogRepository, error) {
	switch source := viper.GetString("CATALOG_SOURCE"); source {
	case "csv":
		return repositories.NewCSVCatalogRepository(viper.GetString("CATALOG_CSV_PATH"))
	case "database":
		var dialector gorm.Dialector
		dsn := viper.GetString("DATABASE_DSN")
		if viper.GetString("DATABASE_DRIVER") == "postgres" {
			dialector = postgres.Open(dsn)
		} else {
			dialector = sqlite.Open(dsn)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, err
		}
		repo := repositories.NewGORMCatalogRepository(db)
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		repo := repositories.NewMemoryCatalogRepository()
		if err := seedCatalog(repo); err != nil {
			return nil, err
		}
		log.Printf("Catalog source %q, using seeded in-memory catalog", source)
		return repo, nil
	}
}

// seedCatalog populates the in-memory catalogue with the boutique's demo
// products.
func seedCatalog(repo *repositories.MemoryCatalogRepository) error {
	products := []models.Product{
		{
			Code:        "HK001",
			Description: "Elegant cotton kurthi top with floral prints.",
			Price:       799,
			Type:        "kurthi tops",
			InStock:     true,
			SizeOrder:   []string{"S", "M", "L"},
			SizeAvail:   map[string]bool{"S": true, "M": false, "L": true},
			Images:      []string{"111.jpg", "222.jpg", "333.jpg"},
		},
		{
			Code:        "HSK002",
			Description: "Trendy short kurti with mirror work.",
			Price:       599,
			Type:        "short kurtis",
			InStock:     false,
			SizeOrder:   []string{"XS", "S", "M"},
			SizeAvail:   map[string]bool{"XS": false, "S": true, "M": false},
			Images:      []string{"222.jpg", "333.jpg"},
		},
		{
			Code:        "HCS003",
			Description: "Traditional chudidhar set with dupatta.",
			Price:       1299,
			Type:        "chudidhar sets",
			InStock:     true,
			SizeOrder:   []string{"M", "L", "XL", "XXL"},
			SizeAvail:   map[string]bool{"M": true, "L": true, "XL": true, "XXL": true},
			Images:      []string{"333.jpg", "111.jpg"},
		},
	}

	for _, product := range products {
		if err := repo.Put(product); err != nil {
			return err
		}
		log.Printf("Seeded product: %s (%s)", product.Code, product.Type)
	}
	return nil
}

// loadPlaceholder reads the configured placeholder asset, falling back to
// the generated tile.
func loadPlaceholder(path string) []byte {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data
		}
		log.Printf("Could not read placeholder image %s, using default: %v", path, err)
	}
	return services.DefaultPlaceholder()
}
