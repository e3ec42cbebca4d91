package services

import (
	"context"
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

type CouponService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewCouponService(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *CouponService {
	return &CouponService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// Validate runs the full rule chain for a coupon code against a cart total
// and returns the discount it would apply. It never mutates usage counts;
// redemption happens inside the order transaction.
func (cs *CouponService) Validate(ctx context.Context, code string, cartTotal uint64, userID *uuid.UUID, sessionID string) (*tables.Coupon, uint64, error) {
	coupon, err := cs.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}
	if coupon == nil {
		return nil, 0, lib.ErrNotFound
	}

	if err := cs.checkRules(ctx, coupon, cartTotal, userID, sessionID); err != nil {
		return nil, 0, err
	}

	return coupon, ComputeDiscount(coupon, cartTotal), nil
}

func (cs *CouponService) GetByCode(ctx context.Context, code string) (*tables.Coupon, error) {
	coupon, err := database.Query[tables.Coupon](cs.db).
		Where("code", strings.ToUpper(strings.TrimSpace(code))).
		First(ctx)
	if err != nil {
		cs.logger.Error("Failed to look up coupon", gecho.Field("error", lib.MapPgError(err)), gecho.Field("code", code))
		return nil, err
	}
	return coupon, nil
}

func (cs *CouponService) checkRules(ctx context.Context, coupon *tables.Coupon, cartTotal uint64, userID *uuid.UUID, sessionID string) error {
	now := time.Now()

	if !coupon.IsActive {
		return lib.ErrCouponInactive
	}
	if coupon.RequiresLogin && userID == nil {
		return lib.ErrCouponRequiresLogin
	}
	if coupon.StartDate != nil && now.Before(*coupon.StartDate) {
		return lib.ErrCouponNotStarted
	}
	if coupon.ExpiryDate != nil && now.After(*coupon.ExpiryDate) {
		return lib.ErrCouponExpired
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return lib.ErrCouponExhausted
	}
	if coupon.MinOrderValue != nil && cartTotal < *coupon.MinOrderValue {
		return lib.ErrCouponMinOrder
	}

	if coupon.MaxUsesPerUser != nil {
		used, err := cs.countUsage(ctx, coupon.Id, userID, sessionID)
		if err != nil {
			return err
		}
		if used >= *coupon.MaxUsesPerUser {
			return lib.ErrCouponExhausted
		}
	}

	return nil
}

// countUsage counts prior redemptions by the signed-in user, or by the cart
// session for guests.
func (cs *CouponService) countUsage(ctx context.Context, couponID uuid.UUID, userID *uuid.UUID, sessionID string) (int, error) {
	q := database.Query[tables.CouponUsage](cs.db).Where("coupon_id", couponID)

	if userID != nil {
		q = q.Where("user_id", *userID)
	} else if sessionID != "" {
		q = q.Where("session_id", sessionID)
	} else {
		// Anonymous with no session token: nothing to count against
		return 0, nil
	}

	count, err := q.Count(ctx)
	if err != nil {
		cs.logger.Error("Failed to count coupon usage", gecho.Field("error", err), gecho.Field("coupon_id", couponID))
		return 0, err
	}
	return count, nil
}

// ComputeDiscount returns the discount in kobo, capped at the cart total so
// a fixed coupon can never push an order negative.
func ComputeDiscount(coupon *tables.Coupon, cartTotal uint64) uint64 {
	var discount uint64
	switch coupon.DiscountType {
	case tables.DiscountTypePercentage:
		discount = cartTotal * coupon.DiscountValue / 100
	case tables.DiscountTypeFixed:
		discount = coupon.DiscountValue
	}

	if discount > cartTotal {
		discount = cartTotal
	}
	return discount
}

// Redeem increments the global usage counter and records the redemption,
// inside the caller's order transaction. The guarded UPDATE makes the global
// cap safe under concurrent checkouts: two racing redemptions of a coupon's
// last use cannot both pass.
func (cs *CouponService) Redeem(ctx context.Context, tx bun.Tx, coupon *tables.Coupon, userID *uuid.UUID, sessionID string, orderID uuid.UUID) error {
	q := tx.NewUpdate().
		Model((*tables.Coupon)(nil)).
		Set("used_count = used_count + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", coupon.Id)

	if coupon.MaxUses != nil {
		q = q.Where("used_count < ?", *coupon.MaxUses)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrCouponExhausted
	}

	usage := &tables.CouponUsage{
		CouponId:  coupon.Id,
		UserId:    userID,
		SessionId: sessionID,
		OrderId:   &orderID,
	}
	if _, err := tx.NewInsert().Model(usage).Exec(ctx); err != nil {
		return lib.MapPgError(err)
	}

	return nil
}

// Upsert creates or updates a coupon from the admin console.
func (cs *CouponService) Upsert(ctx context.Context, req *structs.CouponUpsertRequest) (*tables.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	coupon := &tables.Coupon{
		Code:           code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		RequiresLogin:  req.RequiresLogin,
		MaxUses:        req.MaxUses,
		MaxUsesPerUser: req.MaxUsesPerUser,
		MinOrderValue:  req.MinOrderValue,
		IsActive:       true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if req.StartDate != "" {
		t, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return nil, err
		}
		coupon.StartDate = &t
	}
	if req.ExpiryDate != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		coupon.ExpiryDate = &t
	}

	existing, err := cs.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		created, err := database.Query[tables.Coupon](cs.db).Insert(ctx, coupon)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		cs.logger.Info("Coupon created", gecho.Field("code", code))
		return created, nil
	}

	sets := map[string]any{
		"discount_type":     coupon.DiscountType,
		"discount_value":    coupon.DiscountValue,
		"is_active":         coupon.IsActive,
		"requires_login":    coupon.RequiresLogin,
		"start_date":        coupon.StartDate,
		"expiry_date":       coupon.ExpiryDate,
		"max_uses":          coupon.MaxUses,
		"max_uses_per_user": coupon.MaxUsesPerUser,
		"min_order_value":   coupon.MinOrderValue,
		"updated_at":        time.Now(),
	}
	if _, err := database.Query[tables.Coupon](cs.db).Where("id", existing.Id).Update(ctx, sets); err != nil {
		return nil, lib.MapPgError(err)
	}

	cs.logger.Info("Coupon updated", gecho.Field("code", code))
	return cs.GetByCode(ctx, code)
}

// List returns all coupons for the admin console.
func (cs *CouponService) List(ctx context.Context) ([]tables.Coupon, error) {
	coupons, err := database.Query[tables.Coupon](cs.db).OrderBy("created_at", database.DESC).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return coupons, nil
}

// Delete removes a coupon. Historical usage rows stay for reporting.
func (cs *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Coupon](cs.db).Where("id", id).Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}
