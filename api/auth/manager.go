package auth

import (
	"ileke_server/api/middleware"
	"ileke_server/services"
	"ileke_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	cfg         *structs.Config
	authService *services.AuthService
	cartService *services.CartService
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	authService *services.AuthService,
	cartService *services.CartService,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		cfg:         cfg,
		authService: authService,
		cartService: cartService,
		mw:          mw,
	}
}

func (ar *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/magic-link", ar.RequestMagicLink)
		r.Post("/verify", ar.VerifyMagicLink)
		r.Post("/logout", ar.Logout)
		r.Get("/csrf", ar.GetCSRFToken)

		r.Group(func(r chi.Router) {
			r.Use(ar.mw.UserAuthMiddleware)
			r.Get("/me", ar.GetMe)
			r.Patch("/me", ar.UpdateMe)
		})
	})
}
