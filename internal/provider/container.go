package provider

import (
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/authz"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/cache"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/config"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/payment/paystack"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"
)

// Container wires repositories and services once at boot.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	CustomerRepo      repository.CustomerRepository
	CategoryRepo      repository.CategoryRepository
	BrandRepo         repository.BrandRepository
	ProductRepo       repository.ProductRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	PaymentRepo       repository.PaymentRepository
	PaymentIntentRepo repository.PaymentIntentRepository
	ArtisanRepo       repository.ArtisanRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CustomerAuthService *service.CustomerAuthService
	AdminService        *service.AdminService
	CategoryService     *service.CategoryService
	ProductService      *service.ProductService
	CartService         *service.CartService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	ArtisanService      *service.ArtisanService
	DashboardService    *service.DashboardService
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.PaymentIntentRepo = repository.NewPaymentIntentRepository(db)
	c.ArtisanRepo = repository.NewArtisanRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	gatewayCfg := &paystack.Config{
		SecretKey:       c.Config.Paystack.SecretKey,
		BaseURL:         c.Config.Paystack.BaseURL,
		CallbackURL:     c.Config.Paystack.CallbackURL,
		Currency:        c.Config.Paystack.Currency,
		ReferencePrefix: c.Config.Paystack.ReferencePrefix,
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CustomerAuthService = service.NewCustomerAuthService(c.Config, c.CustomerRepo)
	c.AdminService = service.NewAdminService(c.AdminRepo, c.CustomerRepo, c.AuthService)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.BrandRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.BrandRepo, c.ArtisanRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.QueueClient)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.PaymentIntentRepo, c.OrderRepo, c.CustomerRepo, gatewayCfg, c.QueueClient, c.Config.Order.PaymentExpireMinutes)
	c.ArtisanService = service.NewArtisanService(c.ArtisanRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
