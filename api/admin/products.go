package admin

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ileke_server/lib"
	"ileke_server/services"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

// ListProducts serves the admin catalog view, including inactive products.
func (ar *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	query := r.URL.Query()

	opts := &services.ProductListOptions{
		Page:            page,
		PageSize:        pageSize,
		Collection:      query.Get("collection"),
		SearchTerm:      query.Get("q"),
		SortBy:          query.Get("sort_by"),
		SortDirection:   query.Get("sort_direction"),
		IncludeVariants: true,
		IncludeImages:   true,
	}

	if raw := query.Get("is_active"); raw != "" {
		active := raw == "true"
		opts.IsActive = &active
	}

	result, err := ar.productService.List(r.Context(), opts)
	if err != nil {
		ar.logger.Error("Failed to list products for admin", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.product.fetchingProducts"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[tables.Product](r)
	if err != nil {
		ar.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidProduct"), gecho.Send())
		return
	}

	product, err := ar.productService.Create(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.BadRequest(w, gecho.WithMessage("error.product.handleTaken"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to create product", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.product.creating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductUpdateRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract product update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidProduct"), gecho.Send())
		return
	}

	product, err := ar.productService.Update(r.Context(), id, body)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.product.notFound"), gecho.Send())
			return
		}
		if errors.Is(err, lib.ErrConflict) {
			gecho.BadRequest(w, gecho.WithMessage("error.product.handleTaken"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.product.updating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// ReplaceProductVariants swaps a product's whole variant set in one save.
func (ar *AdminRoutesManager) ReplaceProductVariants(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductVariantsReplaceRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract variants body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidVariants"), gecho.Send())
		return
	}

	product, err := ar.productService.ReplaceVariants(r.Context(), id, body.Variants)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.product.notFound"), gecho.Send())
			return
		}
		if errors.Is(err, lib.ErrConflict) {
			gecho.BadRequest(w, gecho.WithMessage("error.product.skuTaken"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to replace variants", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.product.updating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.variantsReplaced"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// DuplicateProduct clones a product as a starting point for a new listing.
func (ar *AdminRoutesManager) DuplicateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidId"), gecho.Send())
		return
	}

	product, err := ar.productService.Duplicate(r.Context(), id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.product.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to duplicate product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.product.duplicating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.duplicated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// DeleteProductImage removes an image row and its hosted asset.
func (ar *AdminRoutesManager) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidId"), gecho.Send())
		return
	}
	imageID, err := uuid.Parse(chi.URLParam(r, "imageId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidId"), gecho.Send())
		return
	}

	if err := ar.productService.RemoveProductImage(r.Context(), id, imageID); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.product.imageNotFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to delete product image", gecho.Field("error", err), gecho.Field("image_id", imageID))
		gecho.InternalServerError(w, gecho.WithMessage("error.product.deletingImage"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.imageDeleted"),
		gecho.Send(),
	)
}

// DeleteProduct soft-deletes so historical order items keep their snapshots.
func (ar *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidId"), gecho.Send())
		return
	}

	if err := ar.productService.Delete(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.product.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.product.deleting"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.deleted"),
		gecho.Send(),
	)
}
