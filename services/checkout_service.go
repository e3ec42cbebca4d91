package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

// CheckoutService orchestrates the storefront payment flow: it prices the
// cart, carries the checkout intent across the gateway redirect in an
// encrypted cookie, and turns a verified charge into an order.
type CheckoutService struct {
	logger          *gecho.Logger
	cfg             *structs.Config
	cartService     *CartService
	couponService   *CouponService
	orderService    *OrderService
	paystackService *PaystackService
	cacheService    *CacheService
}

func NewCheckoutService(logger *gecho.Logger, cfg *structs.Config, cartService *CartService, couponService *CouponService, orderService *OrderService, paystackService *PaystackService, cacheService *CacheService) *CheckoutService {
	return &CheckoutService{
		logger:          logger,
		cfg:             cfg,
		cartService:     cartService,
		couponService:   couponService,
		orderService:    orderService,
		paystackService: paystackService,
		cacheService:    cacheService,
	}
}

// BuildSession prices a cart against the live catalog and builds the checkout
// intent. Cart line snapshots are advisory; the charge always uses current
// prices.
func (chs *CheckoutService) BuildSession(ctx context.Context, req *structs.CheckoutInitializeRequest, cart *tables.Cart, userID *uuid.UUID) (*structs.CheckoutSession, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return nil, lib.ErrCartEmpty
	}

	lines := make([]structs.CheckoutSessionLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		product, err := chs.cartService.productService.GetByID(ctx, line.ProductId)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, lib.ErrNotFound
		}
		unitPrice := product.Price

		if line.ProductVariantId != nil {
			variant, err := chs.cartService.productService.GetVariant(ctx, *line.ProductVariantId)
			if err != nil {
				return nil, err
			}
			if variant.Stock < line.Quantity {
				return nil, lib.ErrInsufficientStock
			}
			unitPrice = variant.Price
		}

		lines = append(lines, structs.CheckoutSessionLine{
			ProductId:        line.ProductId,
			ProductVariantId: line.ProductVariantId,
			Quantity:         line.Quantity,
			UnitPrice:        unitPrice,
		})
	}
	subtotal := SessionSubtotal(lines)

	var discount uint64
	couponCode := strings.ToUpper(strings.TrimSpace(req.CouponCode))
	if couponCode != "" {
		_, d, err := chs.couponService.Validate(ctx, couponCode, subtotal, userID, cart.Token)
		if err != nil {
			return nil, err
		}
		discount = d
	}

	shipping := chs.cfg.Checkout.ShippingFlatKobo
	total := subtotal - discount + shipping

	return &structs.CheckoutSession{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		SaveAddress:     req.SaveAddress,
		UserId:          userID,
		CartId:          cart.Id,
		CouponCode:      couponCode,
		Lines:           lines,
		SubtotalAmount:  subtotal,
		DiscountAmount:  discount,
		ShippingAmount:  shipping,
		TotalAmount:     total,
	}, nil
}

// SessionSubtotal sums repriced session lines in kobo.
func SessionSubtotal(lines []structs.CheckoutSessionLine) uint64 {
	var subtotal uint64
	for _, line := range lines {
		subtotal += line.UnitPrice * uint64(line.Quantity)
	}
	return subtotal
}

// Initialize starts a gateway transaction for a priced session and returns
// the hosted payment URL.
func (chs *CheckoutService) Initialize(ctx context.Context, session *structs.CheckoutSession) (*structs.CheckoutInitializeResponse, error) {
	req := &structs.PaystackInitializeRequest{
		Email:       session.Email,
		Amount:      session.TotalAmount,
		Currency:    chs.cfg.Checkout.CurrencyCode,
		CallbackURL: chs.cfg.Server.FrontendURL + "/checkout/callback",
		Metadata: structs.PaystackMetadata{
			CustomerName:   strings.TrimSpace(session.ShippingAddress.FirstName + " " + session.ShippingAddress.LastName),
			Phone:          session.Phone,
			CartId:         session.CartId.String(),
			CouponCode:     session.CouponCode,
			DiscountAmount: session.DiscountAmount,
		},
	}

	resp, err := chs.paystackService.InitializeTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	chs.logger.Info("Checkout initialized",
		gecho.Field("reference", resp.Data.Reference),
		gecho.Field("amount", session.TotalAmount),
	)

	return &structs.CheckoutInitializeResponse{
		AuthorizationURL: resp.Data.AuthorizationURL,
		Reference:        resp.Data.Reference,
	}, nil
}

// Verify settles a checkout: confirms the charge with the gateway, checks the
// paid amount against the intent, and creates the order exactly once.
func (chs *CheckoutService) Verify(ctx context.Context, reference string, session *structs.CheckoutSession) (*tables.Order, error) {
	// A replayed callback returns the already created order
	existing, err := chs.orderService.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	verify, err := chs.paystackService.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}
	if verify.Data.Status != "success" {
		chs.logger.Warn("Checkout verification not successful",
			gecho.Field("reference", reference),
			gecho.Field("gateway_status", verify.Data.Status),
		)
		return nil, lib.ErrPaymentNotSettled
	}
	if verify.Data.Currency != "" && verify.Data.Currency != chs.cfg.Checkout.CurrencyCode {
		chs.logger.Error("Charge settled in an unexpected currency",
			gecho.Field("reference", reference),
			gecho.Field("currency", verify.Data.Currency),
		)
		return nil, lib.ErrPaymentNotSettled
	}
	if verify.Data.Metadata.CartId != "" && verify.Data.Metadata.CartId != session.CartId.String() {
		chs.logger.Error("Charge metadata points at a different cart",
			gecho.Field("reference", reference),
			gecho.Field("metadata_cart", verify.Data.Metadata.CartId),
			gecho.Field("session_cart", session.CartId),
		)
		return nil, lib.ErrSessionMismatch
	}
	if verify.Data.Amount != session.TotalAmount {
		chs.logger.Error("Paid amount does not match checkout intent",
			gecho.Field("reference", reference),
			gecho.Field("paid", verify.Data.Amount),
			gecho.Field("expected", session.TotalAmount),
		)
		return nil, lib.ErrAmountMismatch
	}

	cartRow, err := chs.loadCart(ctx, session.CartId)
	if err != nil {
		return nil, err
	}

	order, _, err := chs.orderService.CreateFromCheckout(ctx, session, cartRow, reference)
	if err != nil {
		if err == lib.ErrConflict {
			// Lost the race against a concurrent verify for the same reference
			return chs.orderService.GetByReference(ctx, reference)
		}
		return nil, err
	}

	return order, nil
}

func (chs *CheckoutService) loadCart(ctx context.Context, cartID uuid.UUID) (*tables.Cart, error) {
	cart, err := chs.cartService.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, lib.ErrCartEmpty
	}
	return cart, nil
}

// EncodeSession seals a checkout session into the intent cookie value.
func (chs *CheckoutService) EncodeSession(session *structs.CheckoutSession) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	return lib.Encrypt(string(payload), chs.cfg.Encryption.Key)
}

// DecodeSession opens an intent cookie value back into a session.
func (chs *CheckoutService) DecodeSession(value string) (*structs.CheckoutSession, error) {
	payload, err := lib.Decrypt(value, chs.cfg.Encryption.Key)
	if err != nil {
		return nil, lib.ErrInvalidToken
	}

	var session structs.CheckoutSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, lib.ErrInvalidToken
	}
	return &session, nil
}

// MarkWebhookProcessed guards webhook handling so each gateway event is acted
// on once. Returns false when the reference was already handled.
func (chs *CheckoutService) MarkWebhookProcessed(reference string) bool {
	acquired, err := chs.cacheService.SetNX("webhook:paystack:"+reference, time.Now().Unix(), 24*time.Hour)
	if err != nil {
		// On cache failure, err on the side of processing; order creation is
		// idempotent on the payment reference anyway
		chs.logger.Warn("Webhook dedup check failed", gecho.Field("error", err), gecho.Field("reference", reference))
		return true
	}
	return acquired
}
