package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/slotwise/appointment-backend/internal/auth"
	"github.com/slotwise/appointment-backend/internal/booking"
	bookingHttp "github.com/slotwise/appointment-backend/internal/booking/http"
	catalogHttp "github.com/slotwise/appointment-backend/internal/catalog/http"
	"github.com/slotwise/appointment-backend/internal/notification"
	notificationHttp "github.com/slotwise/appointment-backend/internal/notification/http"
	"github.com/slotwise/appointment-backend/internal/slot"
	slotHttp "github.com/slotwise/appointment-backend/internal/slot/http"
	"github.com/slotwise/appointment-backend/internal/user"
	userHttp "github.com/slotwise/appointment-backend/internal/user/http"
)

// Config carries everything the router needs: module services, handlers
// and environment settings.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	BookingService booking.Service
	SlotService    slot.Service
	NotifService   notification.Service

	UserHandler    *userHttp.Handler
	CatalogHandler *catalogHttp.Handler
	SlotHandler    *slotHttp.Handler
	BookingHandler *bookingHttp.Handler
	NotifHandler   *notificationHttp.Handler

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, recovery, auth) and
// registers routes for every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	providerMiddleware := RequireProvider(cfg.UserService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, cfg.UserHandler, authMiddleware)
		catalogHttp.RegisterRoutes(v1, cfg.CatalogHandler, authMiddleware, providerMiddleware)
		slotHttp.RegisterRoutes(v1, cfg.SlotHandler, authMiddleware, providerMiddleware)
		bookingHttp.RegisterRoutes(v1, cfg.BookingHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, cfg.NotifHandler, authMiddleware)
	}

	return r
}
