package services

import (
	"context"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"ileke_server/database"
	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

const maxCartLines = 50

type CartService struct {
	logger         *gecho.Logger
	db             *database.DB
	productService *ProductService
}

func NewCartService(logger *gecho.Logger, db *database.DB, productService *ProductService) *CartService {
	return &CartService{
		logger:         logger,
		db:             db,
		productService: productService,
	}
}

// GetByToken loads a cart with its lines by the opaque cookie token.
func (cs *CartService) GetByToken(ctx context.Context, token string) (*tables.Cart, error) {
	if token == "" {
		return nil, nil
	}

	cart, err := database.Query[tables.Cart](cs.db).
		Where("token", token).
		With("Lines").
		First(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch cart", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}
	return cart, nil
}

// GetCartByID loads a cart with its lines by primary key.
func (cs *CartService) GetCartByID(ctx context.Context, id uuid.UUID) (*tables.Cart, error) {
	cart, err := database.Query[tables.Cart](cs.db).
		Where("id", id).
		With("Lines").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return cart, nil
}

// GetOrCreate returns the cart for a token, creating one when the token is
// empty or unknown. The returned token goes back into the cookie.
func (cs *CartService) GetOrCreate(ctx context.Context, token string, userID *uuid.UUID) (*tables.Cart, error) {
	cart, err := cs.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	newToken, err := lib.GenerateRandomToken(24)
	if err != nil {
		return nil, err
	}

	cart, err = database.Query[tables.Cart](cs.db).Insert(ctx, &tables.Cart{
		Token:  newToken,
		UserId: userID,
	})
	if err != nil {
		cs.logger.Error("Failed to create cart", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	cart.Lines = []*tables.CartLine{}
	return cart, nil
}

// AddLine adds a product (or variant) to the cart, merging quantities when the
// line already exists. Price is snapshotted from the current catalog.
func (cs *CartService) AddLine(ctx context.Context, cart *tables.Cart, req *structs.CartLineRequest) (*tables.Cart, error) {
	productID, err := uuid.Parse(req.ProductId)
	if err != nil {
		return nil, lib.ErrNotFound
	}

	product, err := cs.productService.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, lib.ErrNotFound
	}

	unitPrice := product.Price
	var variantID *uuid.UUID
	if req.ProductVariantId != "" {
		vid, err := uuid.Parse(req.ProductVariantId)
		if err != nil {
			return nil, lib.ErrNotFound
		}
		variant, err := cs.productService.GetVariant(ctx, vid)
		if err != nil {
			return nil, err
		}
		if variant.ProductId != productID || !variant.IsActive {
			return nil, lib.ErrNotFound
		}
		if variant.Stock < req.Quantity {
			return nil, lib.ErrInsufficientStock
		}
		unitPrice = variant.Price
		variantID = &vid
	}

	existing := findCartLine(cart, productID, variantID)
	if existing != nil {
		newQty := existing.Quantity + req.Quantity
		if newQty > 20 {
			newQty = 20
		}
		if _, err := database.Query[tables.CartLine](cs.db).
			Where("id", existing.Id).
			Update(ctx, map[string]any{
				"quantity":   newQty,
				"unit_price": unitPrice,
				"updated_at": time.Now(),
			}); err != nil {
			return nil, lib.MapPgError(err)
		}
	} else {
		if len(cart.Lines) >= maxCartLines {
			return nil, lib.ErrCartFull
		}
		line := &tables.CartLine{
			CartId:           cart.Id,
			ProductId:        productID,
			ProductVariantId: variantID,
			Quantity:         req.Quantity,
			UnitPrice:        unitPrice,
		}
		if _, err := database.Query[tables.CartLine](cs.db).Insert(ctx, line); err != nil {
			return nil, lib.MapPgError(err)
		}
	}

	cs.touch(ctx, cart.Id)
	return cs.GetByToken(ctx, cart.Token)
}

// UpdateLine changes a line's quantity; zero removes it.
func (cs *CartService) UpdateLine(ctx context.Context, cart *tables.Cart, lineID uuid.UUID, quantity int) (*tables.Cart, error) {
	var owned *tables.CartLine
	for _, line := range cart.Lines {
		if line.Id == lineID {
			owned = line
			break
		}
	}
	if owned == nil {
		return nil, lib.ErrNotFound
	}

	if quantity == 0 {
		if _, err := database.Query[tables.CartLine](cs.db).Where("id", lineID).Delete(ctx); err != nil {
			return nil, lib.MapPgError(err)
		}
	} else {
		if _, err := database.Query[tables.CartLine](cs.db).
			Where("id", lineID).
			Update(ctx, map[string]any{
				"quantity":   quantity,
				"updated_at": time.Now(),
			}); err != nil {
			return nil, lib.MapPgError(err)
		}
	}

	cs.touch(ctx, cart.Id)
	return cs.GetByToken(ctx, cart.Token)
}

// Clear removes all lines, keeping the cart row and its cookie token.
func (cs *CartService) Clear(ctx context.Context, cartID uuid.UUID) error {
	if _, err := database.Query[tables.CartLine](cs.db).Where("cart_id", cartID).Delete(ctx); err != nil {
		return lib.MapPgError(err)
	}
	cs.touch(context.WithoutCancel(ctx), cartID)
	return nil
}

// Subtotal sums the cart lines in kobo.
func Subtotal(cart *tables.Cart) uint64 {
	var total uint64
	for _, line := range cart.Lines {
		total += line.UnitPrice * uint64(line.Quantity)
	}
	return total
}

// AttachUser claims a guest cart for a signed-in customer.
func (cs *CartService) AttachUser(ctx context.Context, cartID, userID uuid.UUID) error {
	_, err := database.Query[tables.Cart](cs.db).
		Where("id", cartID).
		WhereNull("user_id").
		Update(ctx, map[string]any{
			"user_id":    userID,
			"updated_at": time.Now(),
		})
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

func (cs *CartService) touch(ctx context.Context, cartID uuid.UUID) {
	if _, err := database.Query[tables.Cart](cs.db).
		Where("id", cartID).
		Update(ctx, map[string]any{"updated_at": time.Now()}); err != nil {
		cs.logger.Warn("Failed to touch cart", gecho.Field("error", err), gecho.Field("cart_id", cartID))
	}
}

func findCartLine(cart *tables.Cart, productID uuid.UUID, variantID *uuid.UUID) *tables.CartLine {
	for _, line := range cart.Lines {
		if line.ProductId != productID {
			continue
		}
		if (line.ProductVariantId == nil) != (variantID == nil) {
			continue
		}
		if line.ProductVariantId != nil && *line.ProductVariantId != *variantID {
			continue
		}
		return line
	}
	return nil
}
