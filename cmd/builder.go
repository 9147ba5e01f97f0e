package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ddd-order/api"
	"ddd-order/api/health"
	orderapi "ddd-order/api/order"
	apporder "ddd-order/application/order"
	"ddd-order/config"
	"ddd-order/domain/order"
	"ddd-order/domain/shared"
	"ddd-order/infrastructure/persistence/memory"
	"ddd-order/infrastructure/persistence/mysql"
	"ddd-order/infrastructure/persistence/retry"
	"ddd-order/pkg/logger"
)

// Builder wires the application graph from configuration. Storage is chosen
// by database.type: "mysql" gets GORM repositories, the transactional outbox
// and its worker; anything else runs fully in memory with direct event
// logging.
type Builder struct {
	cfg    *config.Config
	logger *zap.Logger

	db           *gorm.DB
	outboxWorker *mysql.OutboxWorker
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

func (b *Builder) BuildLogger() (*zap.Logger, error) {
	log, err := logger.New(b.cfg.Log)
	if err != nil {
		return nil, err
	}
	b.logger = log
	return log, nil
}

// BuildRouter assembles repositories, unit of work, application service,
// controllers and the gin engine.
func (b *Builder) BuildRouter() (*gin.Engine, error) {
	var (
		orders     order.Repository
		uowFactory shared.UnitOfWorkFactory
	)

	healthCtl := health.NewController()

	switch b.cfg.Database.Type {
	case "mysql":
		db, err := mysql.NewDB(b.cfg.Database, b.logger)
		if err != nil {
			return nil, fmt.Errorf("build mysql storage: %w", err)
		}
		b.db = db

		outbox := mysql.NewOutboxRepository(db)
		orders = mysql.NewOrderRepository(db)
		uowFactory = mysql.NewUnitOfWorkFactory(db, outbox, b.logger, retry.Config{
			MaxAttempts:  b.cfg.Database.Retry.MaxAttempts,
			InitialDelay: b.cfg.Database.Retry.InitialDelay,
			MaxDelay:     b.cfg.Database.Retry.MaxDelay,
		})

		if b.cfg.Worker.Enabled {
			b.outboxWorker = mysql.NewOutboxWorker(outbox,
				memory.NewLoggingEventPublisher(b.logger),
				b.logger,
				mysql.OutboxWorkerConfig{
					PollInterval: b.cfg.Worker.PollInterval,
					BatchSize:    b.cfg.Worker.BatchSize,
					MaxRetries:   b.cfg.Worker.MaxRetries,
				})
		}

		healthCtl.AddChecker("mysql", func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		})
	default:
		orders = memory.NewOrderRepository()
		uowFactory = memory.NewUnitOfWorkFactory(memory.NewLoggingEventPublisher(b.logger))
	}

	catalog := memory.NewProductCatalog()
	service := apporder.NewApplicationService(orders, catalog, uowFactory, b.logger)
	orderCtl := orderapi.NewController(service, b.logger)

	return api.NewRouter(b.cfg, b.logger, orderCtl, healthCtl), nil
}

// OutboxWorker returns the embedded worker, or nil when not configured.
func (b *Builder) OutboxWorker() *mysql.OutboxWorker {
	return b.outboxWorker
}

// Close releases the database pool.
func (b *Builder) Close() error {
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
