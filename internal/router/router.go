package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/authz"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/cache"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/config"
	adminhandlers "github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/handlers/admin"
	publichandlers "github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/handlers/public"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the storefront and back-office route tables.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gt"
	}
	redisClient := cache.Client()
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many registration attempts",
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   10,
		Message:       "too many checkout attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded product images.
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// Storefront catalog, no authentication.
		apiV1.GET("/categories", publicHandler.ListCategories)
		apiV1.GET("/brands", publicHandler.ListBrands)
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIPAndJSONField("email")), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// Paystack redirects the shopper here after the hosted checkout.
		apiV1.GET("/payments/callback", publicHandler.PaymentCallback)

		customer := apiV1.Group("")
		customer.Use(CustomerJWTMiddleware(cfg.CustomerJWT.SecretKey, c.CustomerRepo))
		{
			customer.GET("/me", publicHandler.GetProfile)
			customer.PUT("/me/profile", publicHandler.UpdateProfile)
			customer.PUT("/me/password", publicHandler.ChangePassword)

			customer.GET("/cart", publicHandler.GetCart)
			customer.POST("/cart/items", publicHandler.AddCartItem)
			customer.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			customer.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			customer.DELETE("/cart", publicHandler.ClearCart)

			customer.POST("/orders", RateLimitMiddleware(redisClient, checkoutRule, KeyByIP), publicHandler.Checkout)
			customer.GET("/orders", publicHandler.ListOrders)
			customer.GET("/orders/:id", publicHandler.GetOrder)
			customer.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			customer.POST("/orders/:id/payment", publicHandler.InitiatePayment)
			customer.GET("/orders/:id/payment", publicHandler.GetOrderPayment)

			customer.POST("/artisans/apply", publicHandler.ApplyAsArtisan)
			customer.GET("/artisans/me", publicHandler.GetArtisanApplication)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Use(
				AdminJWTMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
				AdminRBACMiddleware(c.AuthzService),
			)
			{
				authorized.GET("/me", adminHandler.GetProfile)
				authorized.PUT("/password", adminHandler.ChangePassword)

				authorized.GET("/dashboard", adminHandler.Dashboard)

				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authorized.GET("/brands", adminHandler.ListBrands)
				authorized.POST("/brands", adminHandler.CreateBrand)
				authorized.PUT("/brands/:id", adminHandler.UpdateBrand)
				authorized.DELETE("/brands/:id", adminHandler.DeleteBrand)

				authorized.GET("/products", adminHandler.ListProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.PATCH("/products/:id/status", adminHandler.SetProductStatus)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

				authorized.GET("/payments", adminHandler.ListPayments)

				authorized.GET("/customers", adminHandler.ListCustomers)
				authorized.PATCH("/customers/:id/status", adminHandler.SetCustomerStatus)

				authorized.GET("/artisans", adminHandler.ListArtisans)
				authorized.GET("/artisans/:id", adminHandler.GetArtisan)
				authorized.POST("/artisans/:id/review", adminHandler.ReviewArtisan)

				authorized.GET("/admins", adminHandler.ListAdmins)
				authorized.POST("/admins", adminHandler.CreateAdmin)
				authorized.PATCH("/admins/:id/role", adminHandler.SetAdminRole)
				authorized.DELETE("/admins/:id", adminHandler.DeleteAdmin)

				authorized.GET("/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog lists the back-office routes as casbin
// objects, for building role policies in the UI.
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
