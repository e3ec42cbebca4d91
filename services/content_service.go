package services

import (
	"context"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"ileke_server/database"
	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

// ContentService serves storefront content: pages, navigation menus, reviews,
// and testimonials, plus the URL set for the sitemap.
type ContentService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewContentService(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ContentService {
	return &ContentService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// GetPage returns an active page by handle.
func (cns *ContentService) GetPage(ctx context.Context, handle string) (*tables.Page, error) {
	page, err := database.Query[tables.Page](cns.db).
		Where("handle", handle).
		Where("is_active", true).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if page == nil {
		return nil, lib.ErrNotFound
	}
	return page, nil
}

// GetMenu returns a navigation menu with its ordered items.
func (cns *ContentService) GetMenu(ctx context.Context, handle string) (*tables.Menu, error) {
	menu, err := database.Query[tables.Menu](cns.db).
		Where("handle", handle).
		With("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if menu == nil {
		return nil, lib.ErrNotFound
	}
	return menu, nil
}

// UpsertMenu creates or updates a menu by handle and replaces its items in
// one transaction. The admin edits a menu as a whole, so partial item edits
// are not a thing.
func (cns *ContentService) UpsertMenu(ctx context.Context, req *structs.MenuUpsertRequest) (*tables.Menu, error) {
	err := database.RunInTx(ctx, cns.db, func(ctx context.Context, tx bun.Tx) error {
		menu := &tables.Menu{Handle: req.Handle, Title: req.Title}
		if _, err := tx.NewInsert().
			Model(menu).
			On("CONFLICT (handle) DO UPDATE").
			Set("title = EXCLUDED.title").
			Returning("id").
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if _, err := tx.NewDelete().
			Model((*tables.MenuItem)(nil)).
			Where("menu_id = ?", menu.Id).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if len(req.Items) == 0 {
			return nil
		}
		items := make([]tables.MenuItem, 0, len(req.Items))
		for i, item := range req.Items {
			items = append(items, tables.MenuItem{
				MenuId:   menu.Id,
				Title:    item.Title,
				URL:      item.URL,
				Position: i,
			})
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		return nil
	})
	if err != nil {
		cns.logger.Error("Failed to upsert menu", gecho.Field("error", err), gecho.Field("handle", req.Handle))
		return nil, err
	}

	return cns.GetMenu(ctx, req.Handle)
}

// DeleteMenu removes a menu and its items.
func (cns *ContentService) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	err := database.RunInTx(ctx, cns.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.MenuItem)(nil)).
			Where("menu_id = ?", id).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		result, err := tx.NewDelete().
			Model((*tables.Menu)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	return err
}

// UpsertPage creates or updates a page from the admin console.
func (cns *ContentService) UpsertPage(ctx context.Context, page *tables.Page) (*tables.Page, error) {
	existing, err := database.Query[tables.Page](cns.db).Where("handle", page.Handle).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if existing == nil {
		created, err := database.Query[tables.Page](cns.db).Insert(ctx, page)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return created, nil
	}

	if _, err := database.Query[tables.Page](cns.db).
		Where("id", existing.Id).
		Update(ctx, map[string]any{
			"title":      page.Title,
			"body":       page.Body,
			"is_active":  page.IsActive,
			"updated_at": time.Now(),
		}); err != nil {
		return nil, lib.MapPgError(err)
	}

	return database.Query[tables.Page](cns.db).Where("id", existing.Id).First(ctx)
}

// ============================================================================
// Reviews
// ============================================================================

// CreateReview files a review pending moderation.
func (cns *ContentService) CreateReview(ctx context.Context, req *structs.ReviewCreateRequest) (*tables.Review, error) {
	productID, err := uuid.Parse(req.ProductId)
	if err != nil {
		return nil, lib.ErrNotFound
	}

	review := &tables.Review{
		ProductId:  productID,
		AuthorName: req.AuthorName,
		Email:      req.Email,
		Rating:     req.Rating,
		Body:       req.Body,
		IsApproved: false,
	}

	created, err := database.Query[tables.Review](cns.db).Insert(ctx, review)
	if err != nil {
		cns.logger.Error("Failed to create review", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	cns.logger.Info("Review submitted", gecho.Field("product_id", productID))
	return created, nil
}

// ListApprovedReviews returns published reviews for a product.
func (cns *ContentService) ListApprovedReviews(ctx context.Context, productID uuid.UUID) ([]tables.Review, error) {
	reviews, err := database.Query[tables.Review](cns.db).
		Where("product_id", productID).
		Where("is_approved", true).
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return reviews, nil
}

// AdminListReviews returns reviews filtered by approval state.
func (cns *ContentService) AdminListReviews(ctx context.Context, approved *bool, page, pageSize int) (*database.PaginationResult[tables.Review], error) {
	query := database.Query[tables.Review](cns.db).OrderBy("created_at", database.DESC)
	if approved != nil {
		query = query.Where("is_approved", *approved)
	}

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// ModerateReview approves or rejects a pending review. Rejection deletes it.
func (cns *ContentService) ModerateReview(ctx context.Context, id uuid.UUID, approve bool) error {
	if approve {
		affected, err := database.Query[tables.Review](cns.db).
			Where("id", id).
			Update(ctx, map[string]any{
				"is_approved": true,
				"updated_at":  time.Now(),
			})
		if err != nil {
			return lib.MapPgError(err)
		}
		if affected == 0 {
			return lib.ErrNotFound
		}
		return nil
	}

	affected, err := database.Query[tables.Review](cns.db).Where("id", id).Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// ============================================================================
// Testimonials
// ============================================================================

func (cns *ContentService) ListTestimonials(ctx context.Context) ([]tables.Testimonial, error) {
	testimonials, err := database.Query[tables.Testimonial](cns.db).
		Where("is_active", true).
		OrderBy("position", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return testimonials, nil
}

func (cns *ContentService) CreateTestimonial(ctx context.Context, testimonial *tables.Testimonial) (*tables.Testimonial, error) {
	created, err := database.Query[tables.Testimonial](cns.db).Insert(ctx, testimonial)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func (cns *ContentService) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Testimonial](cns.db).Where("id", id).Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// ============================================================================
// Sitemap
// ============================================================================

// SitemapEntry is one URL in the generated sitemap.
type SitemapEntry struct {
	Path       string
	UpdatedAt  time.Time
	ChangeFreq string
	Priority   string
}

// SitemapEntries collects every public storefront URL: static pages, active
// products, collections, and content pages.
func (cns *ContentService) SitemapEntries(ctx context.Context) ([]SitemapEntry, error) {
	now := time.Now()
	entries := []SitemapEntry{
		{Path: "/", UpdatedAt: now, ChangeFreq: "daily", Priority: "1.0"},
		{Path: "/products", UpdatedAt: now, ChangeFreq: "daily", Priority: "0.9"},
		{Path: "/collections", UpdatedAt: now, ChangeFreq: "weekly", Priority: "0.7"},
		{Path: "/custom-orders", UpdatedAt: now, ChangeFreq: "monthly", Priority: "0.6"},
	}

	products, err := database.Query[tables.Product](cns.db).
		Select("handle", "updated_at").
		Where("is_active", true).
		WhereNull("deleted_at").
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	for _, p := range products {
		entries = append(entries, SitemapEntry{
			Path:       "/products/" + p.Handle,
			UpdatedAt:  p.UpdatedAt,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	collections, err := database.Query[tables.Collection](cns.db).
		Select("handle", "updated_at").
		Where("is_active", true).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	for _, c := range collections {
		entries = append(entries, SitemapEntry{
			Path:       "/collections/" + c.Handle,
			UpdatedAt:  c.UpdatedAt,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	pages, err := database.Query[tables.Page](cns.db).
		Select("handle", "updated_at").
		Where("is_active", true).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	for _, pg := range pages {
		entries = append(entries, SitemapEntry{
			Path:       "/pages/" + pg.Handle,
			UpdatedAt:  pg.UpdatedAt,
			ChangeFreq: "monthly",
			Priority:   "0.5",
		})
	}

	return entries, nil
}
