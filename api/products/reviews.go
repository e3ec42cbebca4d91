package products

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"ileke_server/lib"
)

// ListProductReviews returns the approved reviews for a product.
func (pr *ProductRoutesManager) ListProductReviews(w http.ResponseWriter, r *http.Request) {
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
		pr.logger.Error("Failed to fetch product for reviews", gecho.Field("error", err), gecho.Field("handle", handle))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.review.fetchingReviews"),
			gecho.Send(),
		)
		return
	}

	reviews, err := pr.contentService.ListApprovedReviews(r.Context(), product.Id)
	if err != nil {
		pr.logger.Error("Failed to list reviews", gecho.Field("error", err), gecho.Field("product_id", product.Id))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.review.fetchingReviews"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(reviews),
		gecho.Send(),
	)
}
