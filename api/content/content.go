package content

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"ileke_server/lib"
	"ileke_server/structs"
)

func (cr *ContentRoutesManager) GetPage(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	page, err := cr.contentService.GetPage(r.Context(), handle)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.page.notFound"), gecho.Send())
			return
		}
		cr.logger.Error("Failed to fetch page", gecho.Field("error", err), gecho.Field("handle", handle))
		gecho.InternalServerError(w, gecho.WithMessage("error.page.fetching"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(page),
		gecho.Send(),
	)
}

func (cr *ContentRoutesManager) GetMenu(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	menu, err := cr.contentService.GetMenu(r.Context(), handle)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.menu.notFound"), gecho.Send())
			return
		}
		cr.logger.Error("Failed to fetch menu", gecho.Field("error", err), gecho.Field("handle", handle))
		gecho.InternalServerError(w, gecho.WithMessage("error.menu.fetching"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(menu),
		gecho.Send(),
	)
}

func (cr *ContentRoutesManager) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := cr.contentService.ListTestimonials(r.Context())
	if err != nil {
		cr.logger.Error("Failed to list testimonials", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.testimonial.fetching"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(testimonials),
		gecho.Send(),
	)
}

// CreateReview takes a customer review. Reviews stay hidden until an admin
// approves them.
func (cr *ContentRoutesManager) CreateReview(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ReviewCreateRequest](r)
	if err != nil {
		cr.logger.Warn("Failed to extract review body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.review.invalidReview"), gecho.Send())
		return
	}

	review, err := cr.contentService.CreateReview(r.Context(), body)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.product.notFound"), gecho.Send())
			return
		}
		cr.logger.Error("Failed to create review", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.review.creating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.review.submitted"),
		gecho.WithData(review),
		gecho.Send(),
	)
}
