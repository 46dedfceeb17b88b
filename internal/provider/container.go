package provider

import (
	"github.com/aqua-next/internal/authz"
	"github.com/aqua-next/internal/cache"
	"github.com/aqua-next/internal/config"
	"github.com/aqua-next/internal/logger"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/queue"
	"github.com/aqua-next/internal/repository"
	"github.com/aqua-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	CustomerRepo      repository.CustomerRepository
	InfluencerRepo    repository.InfluencerRepository
	SaleRepo          repository.SaleRepository
	StoreRepo         repository.StoreRepository
	PayoutRepo        repository.PayoutRepository
	TierRepo          repository.TierRepository
	SettingRepo       repository.SettingRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	Authz             *authz.Service
	AuthService       *service.AuthService
	SettingService    *service.SettingService
	TierService       *service.TierService
	CustomerService   *service.CustomerService
	InfluencerService *service.InfluencerService
	SaleService       *service.SaleService
	StoreService      *service.StoreService
	PayoutService     *service.PayoutService
	DashboardService  *service.DashboardService
	AuthzAuditService *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.InfluencerRepo = repository.NewInfluencerRepository(db)
	c.SaleRepo = repository.NewSaleRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.PayoutRepo = repository.NewPayoutRepository(db)
	c.TierRepo = repository.NewTierRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.Authz = authzService
	if err := c.Authz.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.TierService = service.NewTierService(c.TierRepo, c.SettingService)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.InfluencerRepo)
	c.InfluencerService = service.NewInfluencerService(c.InfluencerRepo, c.CustomerRepo)
	c.SaleService = service.NewSaleService(c.SaleRepo, c.CustomerRepo, c.InfluencerRepo, c.PayoutRepo, c.TierService, c.QueueClient)
	c.StoreService = service.NewStoreService(c.StoreRepo)
	c.PayoutService = service.NewPayoutService(c.PayoutRepo, c.InfluencerRepo, c.SettingService, c.QueueClient)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
