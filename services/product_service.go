package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"ileke_server/database"
	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
	mediaService *MediaService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService, mediaService *MediaService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
		mediaService: mediaService,
	}
}

// ProductListOptions contains filtering and pagination options for catalog queries.
type ProductListOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	IsActive   *bool   `json:"is_active,omitempty"`
	Collection string  `json:"collection,omitempty"` // collection handle
	Tag        string  `json:"tag,omitempty"`
	MinPrice   *uint64 `json:"min_price,omitempty"` // kobo
	MaxPrice   *uint64 `json:"max_price,omitempty"`
	SearchTerm string  `json:"search_term,omitempty"`

	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"`

	IncludeVariants bool `json:"include_variants"`
	IncludeImages   bool `json:"include_images"`
}

type ProductListResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
}

var productSortFields = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"title":      "title",
}

// List retrieves products with filtering and pagination. Plain storefront
// pages (no filters beyond active) are served from cache.
func (ps *ProductService) List(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ProductListOptions{}
	}
	ps.applyDefaults(opts)

	cacheKey := ps.listCacheKey(opts)
	if cacheKey != "" {
		cached, err := ps.cacheService.GetProductList(cacheKey)
		if err == nil && cached != nil {
			return &ProductListResult{
				Products: cached,
				Pagination: database.Pagination{
					Page:     opts.Page,
					PageSize: opts.PageSize,
					Total:    len(cached),
				},
			}, nil
		}
	}

	query := database.Query[tables.Product](ps.db).WhereNull("deleted_at")
	query = ps.applyFilters(query, opts)

	sortField, ok := productSortFields[opts.SortBy]
	if !ok {
		sortField = "created_at"
	}
	direction := database.DESC
	if strings.EqualFold(opts.SortDirection, "ASC") {
		direction = database.ASC
	}
	query = query.OrderBy(sortField, direction)

	if opts.IncludeVariants {
		query = query.With("Variants")
	}
	if opts.IncludeImages {
		query = query.With("Images")
	}

	result, err := database.Paginate(query, ctx, opts.Page, opts.PageSize)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if cacheKey != "" {
		if err := ps.cacheService.SetProductList(cacheKey, result.Data); err != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
		}
	}

	return &ProductListResult{
		Products:   result.Data,
		Pagination: result.Pagination,
	}, nil
}

func (ps *ProductService) applyDefaults(opts *ProductListOptions) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 24
	}
}

// listCacheKey returns a cache key for cacheable listings, or "" when the
// combination of filters is not worth caching.
func (ps *ProductService) listCacheKey(opts *ProductListOptions) string {
	if opts.SearchTerm != "" || opts.MinPrice != nil || opts.MaxPrice != nil || opts.IsActive != nil {
		return ""
	}
	return fmt.Sprintf("c:%s:t:%s:p:%d:s:%d:v:%v:i:%v:sort:%s:%s",
		opts.Collection, opts.Tag, opts.Page, opts.PageSize,
		opts.IncludeVariants, opts.IncludeImages, opts.SortBy, opts.SortDirection)
}

func (ps *ProductService) applyFilters(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	if opts.IsActive != nil {
		query = query.Where("is_active", *opts.IsActive)
	} else {
		query = query.Where("is_active", true)
	}

	if opts.Collection != "" {
		query = query.WhereRaw(
			"id IN (SELECT cp.product_id FROM collection_products cp JOIN collections c ON c.id = cp.collection_id WHERE c.handle = ?)",
			opts.Collection,
		)
	}
	if opts.Tag != "" {
		query = query.WhereRaw("? = ANY(tags)", opts.Tag)
	}
	if opts.MinPrice != nil {
		query = query.WhereOp("price", ">=", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		query = query.WhereOp("price", "<=", *opts.MaxPrice)
	}
	if opts.SearchTerm != "" {
		term := "%" + strings.TrimSpace(opts.SearchTerm) + "%"
		query = query.WhereRaw("(title ILIKE ? OR description ILIKE ?)", term, term)
	}

	return query
}

// GetByHandle retrieves a single product with variants and images, cached.
func (ps *ProductService) GetByHandle(ctx context.Context, handle string) (*tables.Product, error) {
	cached, err := ps.cacheService.GetProductByHandle(handle)
	if err == nil && cached != nil {
		return cached, nil
	}

	product, err := database.Query[tables.Product](ps.db).
		Where("handle", handle).
		Where("is_active", true).
		WhereNull("deleted_at").
		With("Variants").
		With("Images").
		First(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("handle", handle))
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	if err := ps.cacheService.SetProductByHandle(product); err != nil {
		ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("handle", handle))
	}

	return product, nil
}

// GetByID retrieves a product by id, including inactive ones. Admin reads and
// cart validation go through here.
func (ps *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		WhereNull("deleted_at").
		With("Variants").
		With("Images").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

// GetVariant loads a variant with its parent product for price and stock checks.
func (ps *ProductService) GetVariant(ctx context.Context, variantID uuid.UUID) (*tables.ProductVariant, error) {
	variant, err := database.Query[tables.ProductVariant](ps.db).Where("id", variantID).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if variant == nil {
		return nil, lib.ErrNotFound
	}
	return variant, nil
}

// Create inserts a product with its variants and images in one transaction.
func (ps *ProductService) Create(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	if product.Handle == "" {
		product.Handle = Handleize(product.Title)
	}

	err := database.RunInTx(ctx, ps.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(product).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		for _, variant := range product.Variants {
			variant.ProductId = product.Id
			if variant.SKU == "" {
				variant.SKU = lib.GenerateSKU(product.Handle, variant.Title)
			}
		}
		if len(product.Variants) > 0 {
			if _, err := tx.NewInsert().Model(&product.Variants).Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}
		}

		for i, img := range product.Images {
			img.ProductId = product.Id
			img.Position = i
		}
		if len(product.Images) > 0 {
			if _, err := tx.NewInsert().Model(&product.Images).Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}
		}

		return nil
	})
	if err != nil {
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("title", product.Title))
		return nil, err
	}

	ps.invalidateCatalog()
	ps.logger.Info("Product created", gecho.Field("id", product.Id), gecho.Field("handle", product.Handle))
	return product, nil
}

// productUpdateSets translates a validated update request into column sets.
// Column names are fixed here; nothing client-controlled reaches the SQL text.
func productUpdateSets(req *structs.ProductUpdateRequest) map[string]any {
	sets := map[string]any{}
	if req.Title != nil {
		sets["title"] = *req.Title
	}
	if req.Handle != nil {
		sets["handle"] = *req.Handle
	}
	if req.Description != nil {
		sets["description"] = *req.Description
	}
	if req.Price != nil {
		sets["price"] = *req.Price
	}
	if req.CompareAtPrice != nil {
		sets["compare_at_price"] = *req.CompareAtPrice
	}
	if req.Tags != nil {
		sets["tags"] = *req.Tags
	}
	if req.IsActive != nil {
		sets["is_active"] = *req.IsActive
	}
	if req.FeaturedImage != nil {
		sets["featured_image"] = *req.FeaturedImage
	}
	return sets
}

// Update applies partial updates to a product.
func (ps *ProductService) Update(ctx context.Context, id uuid.UUID, req *structs.ProductUpdateRequest) (*tables.Product, error) {
	sets := productUpdateSets(req)
	if len(sets) == 0 {
		return ps.GetByID(ctx, id)
	}
	sets["updated_at"] = time.Now()

	affected, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		WhereNull("deleted_at").
		Update(ctx, sets)
	if err != nil {
		ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("id", id))
		return nil, lib.MapPgError(err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateCatalog()
	return ps.GetByID(ctx, id)
}

// ReplaceVariants swaps a product's entire variant set in one transaction.
// The admin edits variants as a grid and saves them together; missing SKUs
// are generated from the product handle.
func (ps *ProductService) ReplaceVariants(ctx context.Context, productID uuid.UUID, inputs []structs.ProductVariantInput) (*tables.Product, error) {
	product, err := ps.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants := make([]*tables.ProductVariant, 0, len(inputs))
	for _, in := range inputs {
		sku := in.SKU
		if sku == "" {
			sku = lib.GenerateSKU(product.Handle, in.Title)
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		variants = append(variants, &tables.ProductVariant{
			ProductId: productID,
			Title:     in.Title,
			SKU:       sku,
			Price:     in.Price,
			Stock:     in.Stock,
			IsActive:  active,
		})
	}

	err = database.RunInTx(ctx, ps.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.ProductVariant)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := tx.NewInsert().Model(&variants).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", productID).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		return nil
	})
	if err != nil {
		ps.logger.Error("Failed to replace variants", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, err
	}

	ps.invalidateCatalog()
	return ps.GetByID(ctx, productID)
}

// duplicateNames derives the title and handle for a product copy. The
// timestamp suffix keeps the handle unique without probing the table.
func duplicateNames(title, handle string, now time.Time) (string, string) {
	return title + " (Copy)", fmt.Sprintf("%s-copy-%d", handle, now.UnixMilli())
}

// Duplicate clones a product with its variants and images so admins can use
// an existing style as a starting point. Variant SKUs are regenerated.
func (ps *ProductService) Duplicate(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	original, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	copyTitle, copyHandle := duplicateNames(original.Title, original.Handle, time.Now())
	dup := &tables.Product{
		Title:          copyTitle,
		Handle:         copyHandle,
		Description:    original.Description,
		Price:          original.Price,
		CompareAtPrice: original.CompareAtPrice,
		CurrencyCode:   original.CurrencyCode,
		Tags:           original.Tags,
		IsActive:       original.IsActive,
		FeaturedImage:  original.FeaturedImage,
	}
	for _, v := range original.Variants {
		dup.Variants = append(dup.Variants, &tables.ProductVariant{
			Title:    v.Title,
			Price:    v.Price,
			Stock:    v.Stock,
			IsActive: v.IsActive,
		})
	}
	for _, img := range original.Images {
		dup.Images = append(dup.Images, &tables.ProductImage{
			URL:        img.URL,
			AltText:    img.AltText,
			IsFeatured: img.IsFeatured,
			Position:   img.Position,
		})
	}

	return ps.Create(ctx, dup)
}

// cloudinaryPublicID extracts the asset public id from a Cloudinary delivery
// URL: everything after /upload/, minus the version segment and extension.
// Returns "" for URLs hosted elsewhere.
func cloudinaryPublicID(rawURL string) string {
	_, after, found := strings.Cut(rawURL, "/upload/")
	if !found {
		return ""
	}
	parts := strings.Split(after, "/")
	if len(parts) > 1 && len(parts[0]) > 1 && parts[0][0] == 'v' {
		if _, err := fmt.Sscanf(parts[0], "v%d", new(int64)); err == nil {
			parts = parts[1:]
		}
	}
	publicID := strings.Join(parts, "/")
	if idx := strings.LastIndex(publicID, "."); idx > 0 {
		publicID = publicID[:idx]
	}
	return publicID
}

// RemoveProductImage deletes an image row and destroys the Cloudinary asset.
func (ps *ProductService) RemoveProductImage(ctx context.Context, productID, imageID uuid.UUID) error {
	image, err := database.Query[tables.ProductImage](ps.db).
		Where("id", imageID).
		Where("product_id", productID).
		First(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if image == nil {
		return lib.ErrNotFound
	}

	if _, err := ps.db.NewDelete().
		Model((*tables.ProductImage)(nil)).
		Where("id = ?", imageID).
		Exec(ctx); err != nil {
		return lib.MapPgError(err)
	}

	if publicID := cloudinaryPublicID(image.URL); publicID != "" {
		// The row is gone; the remote asset is cleanup, not correctness
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := ps.mediaService.Destroy(ctx, publicID); err != nil {
				ps.logger.Warn("Failed to destroy product image asset",
					gecho.Field("error", err),
					gecho.Field("public_id", publicID),
				)
			}
		}()
	}

	ps.invalidateCatalog()
	return nil
}

// Delete soft-deletes a product so historical order items keep their reference.
func (ps *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		WhereNull("deleted_at").
		Update(ctx, map[string]any{
			"deleted_at": time.Now(),
			"is_active":  false,
		})
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCatalog()
	ps.logger.Info("Product deleted", gecho.Field("id", id))
	return nil
}

// DecrementStock reduces variant stock inside the caller's transaction. The
// guard keeps stock from going negative under concurrent checkouts.
func (ps *ProductService) DecrementStock(ctx context.Context, tx bun.Tx, variantID uuid.UUID, qty int) error {
	result, err := tx.NewUpdate().
		Model((*tables.ProductVariant)(nil)).
		Set("stock = stock - ?", qty).
		Where("id = ?", variantID).
		Where("stock >= ?", qty).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrInsufficientStock
	}
	return nil
}

// ============================================================================
// Collections
// ============================================================================

func (ps *ProductService) ListCollections(ctx context.Context) ([]tables.Collection, error) {
	collections, err := database.Query[tables.Collection](ps.db).
		Where("is_active", true).
		OrderBy("title", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return collections, nil
}

func (ps *ProductService) GetCollectionByHandle(ctx context.Context, handle string) (*tables.Collection, error) {
	cached, err := ps.cacheService.GetCollectionByHandle(handle)
	if err == nil && cached != nil {
		return cached, nil
	}

	collection, err := database.Query[tables.Collection](ps.db).
		Where("handle", handle).
		Where("is_active", true).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if collection == nil {
		return nil, lib.ErrNotFound
	}

	if err := ps.cacheService.SetCollectionByHandle(collection); err != nil {
		ps.logger.Warn("Failed to cache collection", gecho.Field("error", err), gecho.Field("handle", handle))
	}

	return collection, nil
}

func (ps *ProductService) CreateCollection(ctx context.Context, collection *tables.Collection) (*tables.Collection, error) {
	if collection.Handle == "" {
		collection.Handle = Handleize(collection.Title)
	}

	created, err := database.Query[tables.Collection](ps.db).Insert(ctx, collection)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ps.invalidateCatalog()
	return created, nil
}

// collectionUpdateSets maps a validated update request onto fixed columns.
func collectionUpdateSets(req *structs.CollectionUpdateRequest) map[string]any {
	sets := map[string]any{}
	if req.Title != nil {
		sets["title"] = *req.Title
	}
	if req.Handle != nil {
		sets["handle"] = *req.Handle
	}
	if req.Description != nil {
		sets["description"] = *req.Description
	}
	if req.IsActive != nil {
		sets["is_active"] = *req.IsActive
	}
	return sets
}

func (ps *ProductService) UpdateCollection(ctx context.Context, id uuid.UUID, req *structs.CollectionUpdateRequest) error {
	sets := collectionUpdateSets(req)
	if len(sets) == 0 {
		return nil
	}
	sets["updated_at"] = time.Now()

	affected, err := database.Query[tables.Collection](ps.db).Where("id", id).Update(ctx, sets)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCatalog()
	return nil
}

// SetCollectionProducts replaces a collection's membership with the given
// ordered product ids.
func (ps *ProductService) SetCollectionProducts(ctx context.Context, collectionID uuid.UUID, productIDs []uuid.UUID) error {
	err := database.RunInTx(ctx, ps.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.CollectionProduct)(nil)).
			Where("collection_id = ?", collectionID).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if len(productIDs) == 0 {
			return nil
		}

		rows := make([]tables.CollectionProduct, 0, len(productIDs))
		for i, pid := range productIDs {
			rows = append(rows, tables.CollectionProduct{
				CollectionId: collectionID,
				ProductId:    pid,
				Position:     i,
			})
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		return nil
	})
	if err != nil {
		ps.logger.Error("Failed to set collection products", gecho.Field("error", err), gecho.Field("collection_id", collectionID))
		return err
	}

	ps.invalidateCatalog()
	return nil
}

func (ps *ProductService) invalidateCatalog() {
	if err := ps.cacheService.InvalidateCatalogCaches(); err != nil {
		ps.logger.Warn("Failed to invalidate catalog caches", gecho.Field("error", err))
	}
}

// Handleize turns a title into a URL handle: lowercase, hyphen-separated.
func Handleize(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
