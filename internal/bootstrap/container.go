package bootstrap

import (
	"context"
	"log"
	"os"
	"strings"

	"portfolio-content-be/internal/config"
	"portfolio-content-be/internal/controller"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/repository/cache"
	"portfolio-content-be/internal/repository/contract"
	"portfolio-content-be/internal/repository/memory"
	"portfolio-content-be/internal/repository/unitofwork"
	"portfolio-content-be/internal/service"
	pktNats "portfolio-content-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ContentController controller.IContentController
	RenderController  controller.IRenderController
	AdminController   controller.IAdminController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService          service.IConsumerService
	CacheInvalidationService service.ICacheInvalidationService // nil without NATS

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	renderLogger := logger.NewIsolatedLogger(cfg.Render.ConsumerLogPath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() }, func() { _ = renderLogger.Sync() })

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.closers = append(c.closers, natsSub.Close)
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
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Render cache is process-local", err)
		redisUp = false
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	// Render cache: local tier always, shared tier when Redis answers.
	localCache := memory.NewRenderCache(cfg.Render.CacheTTL)
	var renderCache contract.RenderCache = localCache
	var evicter service.LocalEvicter = localCache
	if redisUp {
		tiered := cache.NewTieredRenderCache(localCache, cache.NewRedisRenderCache(rdb, cfg.Render.CacheTTL))
		renderCache = tiered
		evicter = tiered
	}

	// 4. Services
	renderService := service.NewRenderService(renderCache, cfg.Render.Sanitize, sysLogger)
	publisherService := service.NewPublisherService(cfg.Render.Topic, pubSub)

	var bus service.EventBus
	if natsPub != nil {
		bus = natsPub
	}
	eventPublisher := service.NewContentEventPublisher(bus, sysLogger)

	contentService := service.NewContentService(
		uowFactory,
		renderService,
		publisherService,
		eventPublisher,
		cfg.Render.ExcerptLength,
		sysLogger,
	)

	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Render.Topic,
		uowFactory,
		renderService,
		renderLogger,
	)

	if natsSub != nil {
		c.CacheInvalidationService = service.NewCacheInvalidationService(natsSub, durableName(), evicter, sysLogger)
	}

	adminService := service.NewAdminService(map[string]logger.ILogger{
		"app":    sysLogger,
		"render": renderLogger,
	})

	// 5. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)
	c.ContentController = controller.NewContentController(contentService, auth)
	c.RenderController = controller.NewRenderController(renderService)
	c.AdminController = controller.NewAdminController(adminService, auth)
	c.HealthController = controller.NewHealthController(healthChecks(db, rdb, redisUp))

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func healthChecks(db *gorm.DB, rdb *redis.Client, redisUp bool) map[string]controller.HealthCheck {
	checks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisUp {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}

// durableName gives every instance its own consumer so each one sees every
// change event. JetStream names may not contain dots or wildcards.
func durableName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = watermill.NewShortUUID()
	}
	return "render-cache-" + strings.NewReplacer(".", "-", "*", "-", ">", "-", " ", "-").Replace(host)
}
