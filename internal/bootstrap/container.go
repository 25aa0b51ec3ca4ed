package bootstrap

import (
	"context"
	"log"
	"time"

	"checkinly-be/internal/config"
	"checkinly-be/internal/controller"
	"checkinly-be/internal/handler"
	"checkinly-be/internal/pkg/logger"
	"checkinly-be/internal/pkg/mailer"
	"checkinly-be/internal/repository/unitofwork"
	"checkinly-be/internal/service"
	"checkinly-be/internal/websocket"
	"checkinly-be/pkg/lock"
	"checkinly-be/pkg/payment"

	pktNats "checkinly-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const emailJobTopic = "checkinly.email.jobs"

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	PropertyController  controller.IPropertyController
	GuestController     controller.IGuestController
	DepositController   controller.IDepositController
	GuideController     controller.IGuideController
	DashboardController controller.IDashboardController
	WebhookController   controller.IWebhookController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	refundLocker := lock.NewLocker(rdb, 30*time.Second)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Payment Gateway
	gateway := payment.NewMidtransGateway(cfg.Payment.ServerKey, cfg.Payment.IsProduction)

	// 3. Services
	publisherService := service.NewPublisherService(emailJobTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		emailJobTopic,
		uowFactory,
		emailService,
		cfg.App.ClientURL,
	)

	authService := service.NewAuthService(
		uowFactory,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	propertyService := service.NewPropertyService(uowFactory)
	guestService := service.NewGuestService(uowFactory)
	guideService := service.NewGuideService(uowFactory, publisherService, cfg.App.ClientURL)
	dashboardService := service.NewDashboardService(uowFactory)

	depositService := service.NewDepositService(
		uowFactory,
		gateway,
		refundLocker,
		natsPub,
		publisherService,
		sysLogger,
		cfg.Payment.DefaultCurrency,
	)

	// 3.5 Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// Webhook audit retention sweep
	retention := service.NewRetentionService(uowFactory, sysLogger, 0)
	retention.Start(context.Background())

	// 4. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		PropertyController:  controller.NewPropertyController(propertyService),
		GuestController:     controller.NewGuestController(guestService),
		DepositController:   controller.NewDepositController(depositService),
		GuideController:     controller.NewGuideController(guideService),
		DashboardController: controller.NewDashboardController(dashboardService),
		WebhookController:   controller.NewWebhookController(depositService, cfg.Payment.ServerKey, sysLogger),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
