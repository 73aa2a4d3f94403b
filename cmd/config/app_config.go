package config

import (
	"os"
	"time"

	"canteen-backend/internal/access"
	"canteen-backend/internal/api/handlers"
	"canteen-backend/internal/api/routes"
	"canteen-backend/internal/feed"
	"canteen-backend/internal/middleware"
	"canteen-backend/internal/utils"
	"canteen-backend/internal/utils/mailing"
	"canteen-backend/internal/utils/storage"
	"canteen-backend/pkg/canteen"
	"canteen-backend/pkg/dashboard"
	"canteen-backend/pkg/invitation"
	"canteen-backend/pkg/jwt"
	"canteen-backend/pkg/menu"
	"canteen-backend/pkg/order"
	"canteen-backend/pkg/profile"
	"canteen-backend/pkg/staff"
	"canteen-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.LoadConfig()
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfigDefault("DB_TIMEZONE", "Asia/Kolkata"),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		// an open order stream must not eat the caller's budget
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/v1/orders/stream"
		},
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	appURL := utils.GetConfigDefault("APP_URL", "http://localhost:8080")
	oauth := user.NewGoogleProvider(
		utils.GetConfig("GOOGLE_CLIENT_ID"),
		utils.GetConfig("GOOGLE_CLIENT_SECRET"),
		utils.GetConfig("GOOGLE_REDIRECT_URL"),
	)
	enforcer, err := access.NewEnforcer()
	if err != nil {
		return nil, err
	}
	changeFeed, err := newChangeFeed()
	if err != nil {
		return nil, err
	}
	app.Hooks().OnShutdown(changeFeed.Close)

	// Repository
	userRepository := user.NewUserRepository(db)
	profileRepository := profile.NewProfileRepository(db)
	canteenRepository := canteen.NewCanteenRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	orderRepository := order.NewOrderRepository(db)
	invitationRepository := invitation.NewInvitationRepository(db)
	staffRepository := staff.NewStaffRepository(db)
	dashboardRepository := dashboard.NewDashboardRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, mailer, oauth, appURL)
	profileService := profile.NewProfileService(profileRepository)
	canteenService := canteen.NewCanteenService(canteenRepository)
	menuService := menu.NewMenuService(menuRepository, s3)
	orderService := order.NewOrderService(orderRepository, changeFeed)
	invitationService := invitation.NewInvitationService(
		invitationRepository,
		userService,
		mailer,
		user.HashPassword,
		appURL,
	)
	staffService := staff.NewStaffService(staffRepository)
	dashboardService := dashboard.NewDashboardService(dashboardRepository)

	middlewares := middleware.NewMiddleware(userService, profileService, enforcer)

	// Handler
	routesConfig := routes.Config{
		App:               app,
		AuthHandler:       handlers.NewAuthHandler(userService, validator),
		ProfileHandler:    handlers.NewProfileHandler(profileService, enforcer, validator),
		CanteenHandler:    handlers.NewCanteenHandler(canteenService, validator),
		MenuHandler:       handlers.NewMenuHandler(menuService, validator),
		OrderHandler:      handlers.NewOrderHandler(orderService, validator),
		InvitationHandler: handlers.NewInvitationHandler(invitationService, validator),
		StaffHandler:      handlers.NewStaffHandler(staffService, validator),
		DashboardHandler:  handlers.NewDashboardHandler(dashboardService),
		Middleware:        middlewares,
	}
	routesConfig.Setup()
	return app, nil
}

func newChangeFeed() (feed.Feed, error) {
	url := utils.GetConfig("RABBITMQ_URL")
	if url == "" {
		log.Info("RABBITMQ_URL not set, using in-process order feed")
		return feed.NewLocalFeed(), nil
	}
	return feed.NewRabbitFeed(url)
}
