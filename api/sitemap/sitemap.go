package sitemap

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// GetSitemap renders the storefront sitemap from live catalog and content
// data.
func (sr *SitemapRoutesManager) GetSitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := sr.contentService.SitemapEntries(r.Context())
	if err != nil {
		sr.logger.Error("Failed to build sitemap", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.sitemap.building"), gecho.Send())
		return
	}

	base := strings.TrimSuffix(sr.cfg.Server.FrontendURL, "/")
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]urlEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        base + entry.Path,
			LastMod:    entry.UpdatedAt.Format(time.RFC3339),
			ChangeFreq: entry.ChangeFreq,
			Priority:   entry.Priority,
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))

	if err := xml.NewEncoder(w).Encode(set); err != nil {
		sr.logger.Error("Failed to encode sitemap", gecho.Field("error", err))
	}
}

func (sr *SitemapRoutesManager) GetRobots(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSuffix(sr.cfg.Server.FrontendURL, "/")

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /checkout\n")
	b.WriteString("Disallow: /cart\n")
	b.WriteString("Sitemap: " + base + "/sitemap.xml\n")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(b.String()))
}
