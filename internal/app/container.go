package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotwise/appointment-backend/internal/api"
	"github.com/slotwise/appointment-backend/internal/auth"
	"github.com/slotwise/appointment-backend/internal/booking"
	bookingHttp "github.com/slotwise/appointment-backend/internal/booking/http"
	"github.com/slotwise/appointment-backend/internal/catalog"
	catalogHttp "github.com/slotwise/appointment-backend/internal/catalog/http"
	"github.com/slotwise/appointment-backend/internal/notification"
	notificationHttp "github.com/slotwise/appointment-backend/internal/notification/http"
	"github.com/slotwise/appointment-backend/internal/pkg/storage"
	"github.com/slotwise/appointment-backend/internal/slot"
	slotHttp "github.com/slotwise/appointment-backend/internal/slot/http"
	"github.com/slotwise/appointment-backend/internal/user"
	userHttp "github.com/slotwise/appointment-backend/internal/user/http"
)

// Config holds the dependencies and settings required to start the app.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	TimeZone     *time.Location
	StoragePath  string
}

// Container holds the initialized components needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer wires all modules together.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	blobs, err := storage.NewLocalStore(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init blob store: %w", err)
	}
	thumbnailer := storage.NewThumbnailer(1000, 1000)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Catalog module (services + staff)
	serviceRepo := catalog.NewPgxServiceRepository(cfg.DBPool)
	staffRepo := catalog.NewPgxStaffRepository(cfg.DBPool)
	catalogManager := catalog.NewManager(serviceRepo, staffRepo)

	// Notification module
	notifRepo := notification.NewPgxRepository(cfg.DBPool)
	notifService := notification.NewService(notifRepo)

	// Slot module
	slotRepo := slot.NewPgxRepository(cfg.DBPool)
	slotService := slot.NewService(slotRepo, catalogManager, notifService, cfg.TimeZone)

	// Booking module
	bookingStore := booking.NewPgxStore(cfg.DBPool)
	bookingService := booking.NewService(bookingStore, notifService)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,

		UserService:    userService,
		BookingService: bookingService,
		SlotService:    slotService,
		NotifService:   notifService,

		UserHandler:    userHttp.NewHandler(userService, jwtManager),
		CatalogHandler: catalogHttp.NewHandler(catalogManager, blobs, thumbnailer),
		SlotHandler:    slotHttp.NewHandler(slotService, cfg.TimeZone),
		BookingHandler: bookingHttp.NewHandler(bookingService),
		NotifHandler:   notificationHttp.NewHandler(notifService),

		JWTManager: jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
