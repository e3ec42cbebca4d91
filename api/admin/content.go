package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

func (ar *AdminRoutesManager) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	var approved *bool
	if raw := r.URL.Query().Get("approved"); raw != "" {
		v := raw == "true"
		approved = &v
	}

	result, err := ar.contentService.AdminListReviews(r.Context(), approved, page, pageSize)
	if err != nil {
		ar.logger.Error("Failed to list reviews", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.review.fetchingReviews"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) ApproveReview(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.review.invalidId"), gecho.Send())
		return
	}

	if err := ar.contentService.ModerateReview(r.Context(), id, true); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.review.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to approve review", gecho.Field("error", err), gecho.Field("review_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.review.moderating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.review.approved"),
		gecho.Send(),
	)
}

// RejectReview removes a review entirely.
func (ar *AdminRoutesManager) RejectReview(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.review.invalidId"), gecho.Send())
		return
	}

	if err := ar.contentService.ModerateReview(r.Context(), id, false); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.review.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to reject review", gecho.Field("error", err), gecho.Field("review_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.review.moderating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.review.rejected"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[tables.Testimonial](r)
	if err != nil {
		ar.logger.Warn("Failed to extract testimonial body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.testimonial.invalidTestimonial"), gecho.Send())
		return
	}

	testimonial, err := ar.contentService.CreateTestimonial(r.Context(), body)
	if err != nil {
		ar.logger.Error("Failed to create testimonial", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.testimonial.creating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.testimonial.created"),
		gecho.WithData(testimonial),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.testimonial.invalidId"), gecho.Send())
		return
	}

	if err := ar.contentService.DeleteTestimonial(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.testimonial.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to delete testimonial", gecho.Field("error", err), gecho.Field("testimonial_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.testimonial.deleting"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.testimonial.deleted"),
		gecho.Send(),
	)
}

// UpsertPage creates or replaces a content page by handle.
func (ar *AdminRoutesManager) UpsertPage(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[tables.Page](r)
	if err != nil {
		ar.logger.Warn("Failed to extract page body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.page.invalidPage"), gecho.Send())
		return
	}

	page, err := ar.contentService.UpsertPage(r.Context(), body)
	if err != nil {
		ar.logger.Error("Failed to upsert page", gecho.Field("error", err), gecho.Field("handle", body.Handle))
		gecho.InternalServerError(w, gecho.WithMessage("error.page.saving"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.page.saved"),
		gecho.WithData(page),
		gecho.Send(),
	)
}

// UpsertMenu creates or replaces a navigation menu and its items by handle.
func (ar *AdminRoutesManager) UpsertMenu(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.MenuUpsertRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract menu body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.menu.invalidMenu"), gecho.Send())
		return
	}

	menu, err := ar.contentService.UpsertMenu(r.Context(), body)
	if err != nil {
		ar.logger.Error("Failed to upsert menu", gecho.Field("error", err), gecho.Field("handle", body.Handle))
		gecho.InternalServerError(w, gecho.WithMessage("error.menu.saving"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.menu.saved"),
		gecho.WithData(menu),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.menu.invalidId"), gecho.Send())
		return
	}

	if err := ar.contentService.DeleteMenu(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.menu.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to delete menu", gecho.Field("error", err), gecho.Field("menu_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.menu.deleting"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.menu.deleted"),
		gecho.Send(),
	)
}
