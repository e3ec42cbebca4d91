package admin

import (
	"ileke_server/api/middleware"
	"ileke_server/services"
	"ileke_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger             *gecho.Logger
	cfg                *structs.Config
	authService        *services.AuthService
	productService     *services.ProductService
	orderService       *services.OrderService
	couponService      *services.CouponService
	customOrderService *services.CustomOrderService
	contentService     *services.ContentService
	mw                 *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	authService *services.AuthService,
	productService *services.ProductService,
	orderService *services.OrderService,
	couponService *services.CouponService,
	customOrderService *services.CustomOrderService,
	contentService *services.ContentService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:             logger,
		cfg:                cfg,
		authService:        authService,
		productService:     productService,
		orderService:       orderService,
		couponService:      couponService,
		customOrderService: customOrderService,
		contentService:     contentService,
		mw:                 mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", ar.Login)

		r.Group(func(r chi.Router) {
			r.Use(ar.mw.AdminAuthMiddleware)

			r.Post("/logout", ar.Logout)
			r.Get("/me", ar.GetMe)
			r.Get("/stats", ar.GetStats)

			r.Get("/products", ar.ListProducts)
			r.Get("/orders", ar.ListOrders)
			r.Get("/orders/{id}", ar.GetOrderDetails)
			r.Get("/coupons", ar.ListCoupons)
			r.Get("/custom-orders", ar.ListCustomOrderRequests)
			r.Get("/custom-orders/{id}", ar.GetCustomOrderRequest)
			r.Get("/reviews", ar.ListReviews)

			// Mutations behind CSRF
			r.Group(func(r chi.Router) {
				r.Use(ar.mw.CSRFMiddleware())

				r.Post("/products", ar.CreateProduct)
				r.Patch("/products/{id}", ar.UpdateProduct)
				r.Delete("/products/{id}", ar.DeleteProduct)
				r.Put("/products/{id}/variants", ar.ReplaceProductVariants)
				r.Post("/products/{id}/duplicate", ar.DuplicateProduct)
				r.Delete("/products/{id}/images/{imageId}", ar.DeleteProductImage)

				r.Post("/collections", ar.CreateCollection)
				r.Patch("/collections/{id}", ar.UpdateCollection)
				r.Put("/collections/{id}/products", ar.SetCollectionProducts)

				r.Patch("/orders/{id}", ar.UpdateOrder)
				r.Delete("/orders/{id}", ar.DeleteOrder)

				r.Post("/coupons", ar.UpsertCoupon)
				r.Delete("/coupons/{id}", ar.DeleteCoupon)

				r.Patch("/custom-orders/{id}", ar.UpdateCustomOrderRequest)
				r.Post("/custom-orders/{id}/quote", ar.IssueQuote)

				r.Post("/reviews/{id}/approve", ar.ApproveReview)
				r.Delete("/reviews/{id}", ar.RejectReview)

				r.Post("/testimonials", ar.CreateTestimonial)
				r.Delete("/testimonials/{id}", ar.DeleteTestimonial)

				r.Put("/pages", ar.UpsertPage)

				r.Put("/menus", ar.UpsertMenu)
				r.Delete("/menus/{id}", ar.DeleteMenu)
			})
		})
	})
}
