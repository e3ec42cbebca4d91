package products

import (
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"ileke_server/lib"
	"ileke_server/services"
)

// ListProducts serves the storefront catalog with optional filters.
func (pr *ProductRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := &services.ProductListOptions{
		Collection:      query.Get("collection"),
		Tag:             query.Get("tag"),
		SearchTerm:      query.Get("q"),
		SortBy:          query.Get("sort_by"),
		SortDirection:   query.Get("sort_direction"),
		IncludeVariants: true,
		IncludeImages:   true,
	}

	opts.Page, _ = strconv.Atoi(query.Get("page"))
	opts.PageSize, _ = strconv.Atoi(query.Get("page_size"))

	if raw := query.Get("min_price"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			opts.MinPrice = &v
		}
	}
	if raw := query.Get("max_price"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			opts.MaxPrice = &v
		}
	}

	result, err := pr.productService.List(r.Context(), opts)
	if err != nil {
		pr.logger.Error("Failed to list products", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.product.fetchingProducts"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (pr *ProductRoutesManager) GetProductByHandle(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	product, err := pr.productService.GetByHandle(r.Context(), handle)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.product.notFound"),
				gecho.Send(),
			)
			return
		}
		pr.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("handle", handle))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.product.fetchingProduct"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (pr *ProductRoutesManager) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := pr.productService.ListCollections(r.Context())
	if err != nil {
		pr.logger.Error("Failed to list collections", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.collection.fetchingCollections"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(collections),
		gecho.Send(),
	)
}

func (pr *ProductRoutesManager) GetCollectionByHandle(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	collection, err := pr.productService.GetCollectionByHandle(r.Context(), handle)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.collection.notFound"),
				gecho.Send(),
			)
			return
		}
		pr.logger.Error("Failed to fetch collection", gecho.Field("error", err), gecho.Field("handle", handle))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.collection.fetchingCollection"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(collection),
		gecho.Send(),
	)
}
