package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

func (ar *AdminRoutesManager) CreateCollection(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[tables.Collection](r)
	if err != nil {
		ar.logger.Warn("Failed to extract collection body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.collection.invalidCollection"), gecho.Send())
		return
	}

	collection, err := ar.productService.CreateCollection(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.BadRequest(w, gecho.WithMessage("error.collection.handleTaken"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to create collection", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.collection.creating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.collection.created"),
		gecho.WithData(collection),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.collection.invalidId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CollectionUpdateRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract collection update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.collection.invalidCollection"), gecho.Send())
		return
	}

	if err := ar.productService.UpdateCollection(r.Context(), id, body); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.collection.notFound"), gecho.Send())
			return
		}
		if errors.Is(err, lib.ErrConflict) {
			gecho.BadRequest(w, gecho.WithMessage("error.collection.handleTaken"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to update collection", gecho.Field("error", err), gecho.Field("collection_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.collection.updating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.collection.updated"),
		gecho.Send(),
	)
}

// SetCollectionProducts replaces a collection's membership with the given
// ordered product list.
func (ar *AdminRoutesManager) SetCollectionProducts(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.collection.invalidId"), gecho.Send())
		return
	}

	var body struct {
		ProductIds []uuid.UUID `json:"product_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.collection.invalidProducts"), gecho.Send())
		return
	}

	if err := ar.productService.SetCollectionProducts(r.Context(), id, body.ProductIds); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.collection.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to set collection products", gecho.Field("error", err), gecho.Field("collection_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.collection.updating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.collection.productsUpdated"),
		gecho.Send(),
	)
}
