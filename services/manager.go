package services

import (
	"github.com/MonkyMars/gecho"

	"ileke_server/database"
	"ileke_server/structs"
)

type ServiceManager struct {
	AuthService        *AuthService
	CacheService       *CacheService
	EmailService       *EmailService
	HealthService      *HealthService
	MediaService       *MediaService
	PaystackService    *PaystackService
	ProductService     *ProductService
	CartService        *CartService
	CouponService      *CouponService
	OrderService       *OrderService
	CheckoutService    *CheckoutService
	CustomOrderService *CustomOrderService
	ContentService     *ContentService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg, db)
	authService := NewAuthService(cfg, logger, db, emailService)
	paystackService := NewPaystackService(logger, cfg)
	mediaService := NewMediaService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService, mediaService)
	cartService := NewCartService(logger, db, productService)
	couponService := NewCouponService(logger, cfg, db)
	orderService := NewOrderService(logger, cfg, db, productService, couponService, emailService)
	checkoutService := NewCheckoutService(logger, cfg, cartService, couponService, orderService, paystackService, cacheService)
	customOrderService := NewCustomOrderService(logger, cfg, db, emailService, paystackService, mediaService, cacheService)
	contentService := NewContentService(logger, cfg, db)

	return &ServiceManager{
		AuthService:        authService,
		CacheService:       cacheService,
		EmailService:       emailService,
		HealthService:      healthService,
		MediaService:       mediaService,
		PaystackService:    paystackService,
		ProductService:     productService,
		CartService:        cartService,
		CouponService:      couponService,
		OrderService:       orderService,
		CheckoutService:    checkoutService,
		CustomOrderService: customOrderService,
		ContentService:     contentService,
	}
}
