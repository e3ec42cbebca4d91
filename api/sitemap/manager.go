package sitemap

import (
	"ileke_server/services"
	"ileke_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type SitemapRoutesManager struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	contentService *services.ContentService
}

func NewSitemapRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	contentService *services.ContentService,
) *SitemapRoutesManager {
	return &SitemapRoutesManager{
		logger:         logger,
		cfg:            cfg,
		contentService: contentService,
	}
}

func (sr *SitemapRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/sitemap.xml", sr.GetSitemap)
	r.Get("/robots.txt", sr.GetRobots)
}
