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

type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	productService *ProductService
	couponService  *CouponService
	emailService   *EmailService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, productService *ProductService, couponService *CouponService, emailService *EmailService) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		productService: productService,
		couponService:  couponService,
		emailService:   emailService,
	}
}

// Allowed transitions. Terminal statuses have no outgoing edges.
var orderStatusTransitions = map[tables.OrderStatus][]tables.OrderStatus{
	tables.OrderStatusPending:    {tables.OrderStatusProcessing, tables.OrderStatusCancelled},
	tables.OrderStatusProcessing: {tables.OrderStatusCompleted, tables.OrderStatusCancelled},
}

var deliveryStatusTransitions = map[tables.DeliveryStatus][]tables.DeliveryStatus{
	tables.DeliveryStatusProduction: {tables.DeliveryStatusSorting, tables.DeliveryStatusPaused, tables.DeliveryStatusCancelled},
	tables.DeliveryStatusSorting:    {tables.DeliveryStatusDispatch, tables.DeliveryStatusPaused, tables.DeliveryStatusCancelled},
	tables.DeliveryStatusDispatch:   {tables.DeliveryStatusCompleted, tables.DeliveryStatusPaused, tables.DeliveryStatusCancelled},
	tables.DeliveryStatusPaused:     {tables.DeliveryStatusProduction, tables.DeliveryStatusSorting, tables.DeliveryStatusDispatch, tables.DeliveryStatusCancelled},
}

// CanTransitionOrderStatus reports whether an order status change is allowed.
func CanTransitionOrderStatus(from, to tables.OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionDeliveryStatus reports whether a fulfillment stage change is allowed.
func CanTransitionDeliveryStatus(from, to tables.DeliveryStatus) bool {
	for _, allowed := range deliveryStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// snapshotSessionLine freezes a repriced checkout line into an order item.
// Item prices come from the session the customer was charged on, so line
// totals always sum to the order subtotal even when the catalog moved after
// add-to-cart.
func snapshotSessionLine(orderID uuid.UUID, line structs.CheckoutSessionLine, currency string) *tables.OrderItem {
	return &tables.OrderItem{
		OrderId:          orderID,
		ProductId:        line.ProductId,
		ProductVariantId: line.ProductVariantId,
		Quantity:         line.Quantity,
		UnitPrice:        line.UnitPrice,
		LineTotal:        line.UnitPrice * uint64(line.Quantity),
		CurrencyCode:     currency,
	}
}

// CreateFromCheckout builds a paid order from a verified checkout session in
// one transaction: order row, item snapshots, stock decrements, coupon
// redemption, cart clearing. The payment reference is unique, so a replayed
// verification conflicts instead of creating a second order.
func (os *OrderService) CreateFromCheckout(ctx context.Context, session *structs.CheckoutSession, cart *tables.Cart, reference string) (*tables.Order, []*tables.OrderItem, error) {
	if len(session.Lines) == 0 {
		return nil, nil, lib.ErrCartEmpty
	}

	encryptedName, err := lib.Encrypt(strings.TrimSpace(session.ShippingAddress.FirstName+" "+session.ShippingAddress.LastName), os.cfg.Encryption.Key)
	if err != nil {
		return nil, nil, err
	}
	encryptedEmail, err := lib.Encrypt(session.Email, os.cfg.Encryption.Key)
	if err != nil {
		return nil, nil, err
	}
	encryptedPhone, err := lib.Encrypt(session.Phone, os.cfg.Encryption.Key)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	order := &tables.Order{
		OrderNumber:      lib.GenerateOrderNumber(),
		UserId:           session.UserId,
		CustomerName:     encryptedName,
		Email:            encryptedEmail,
		Phone:            encryptedPhone,
		ShippingAddress:  session.ShippingAddress,
		BillingAddress:   session.BillingAddress,
		SubtotalAmount:   session.SubtotalAmount,
		DiscountAmount:   session.DiscountAmount,
		ShippingAmount:   session.ShippingAmount,
		TotalAmount:      session.TotalAmount,
		CurrencyCode:     os.cfg.Checkout.CurrencyCode,
		CouponCode:       session.CouponCode,
		PaymentReference: reference,
		Status:           tables.OrderStatusProcessing,
		DeliveryStatus:   tables.DeliveryStatusProduction,
		EstimatedArrival: lib.EstimateArrival(tables.DeliveryStatusProduction, now, session.ShippingAddress.State),
		OrderType:        tables.OrderTypeStandard,
	}

	var items []*tables.OrderItem

	err = database.RunInTx(ctx, os.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		items = make([]*tables.OrderItem, 0, len(session.Lines))
		for _, line := range session.Lines {
			product, err := os.productService.GetByID(ctx, line.ProductId)
			if err != nil {
				return err
			}

			item := snapshotSessionLine(order.Id, line, os.cfg.Checkout.CurrencyCode)
			item.ProductTitle = product.Title
			item.ProductImage = product.FeaturedImage

			if line.ProductVariantId != nil {
				variant, err := os.productService.GetVariant(ctx, *line.ProductVariantId)
				if err != nil {
					return err
				}
				item.VariantTitle = variant.Title

				if err := os.productService.DecrementStock(ctx, tx, variant.Id, line.Quantity); err != nil {
					return err
				}
			}

			items = append(items, item)
		}

		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if session.CouponCode != "" {
			coupon, err := os.couponService.GetByCode(ctx, session.CouponCode)
			if err != nil {
				return err
			}
			if coupon != nil {
				if err := os.couponService.Redeem(ctx, tx, coupon, session.UserId, cart.Token, order.Id); err != nil {
					return err
				}
			}
		}

		if _, err := tx.NewDelete().
			Model((*tables.CartLine)(nil)).
			Where("cart_id = ?", cart.Id).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		return nil
	})
	if err != nil {
		os.logger.Error("Failed to create order", gecho.Field("error", err), gecho.Field("reference", reference))
		return nil, nil, err
	}

	os.logger.Info("Order created",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("total", order.TotalAmount),
		gecho.Field("reference", reference),
	)

	// Confirmation emails must not block the verify response
	go func() {
		if err := os.emailService.SendOrderConfirmationEmail(session.Email, session.ShippingAddress.FirstName, order, items); err != nil {
			os.logger.Error("Failed to send order confirmation", gecho.Field("error", err), gecho.Field("order_number", order.OrderNumber))
		}
		if err := os.emailService.SendAdminOrderNotice(order, items); err != nil {
			os.logger.Error("Failed to send admin order notice", gecho.Field("error", err))
		}
	}()

	return order, items, nil
}

// GetByReference finds an order by its gateway payment reference.
func (os *OrderService) GetByReference(ctx context.Context, reference string) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("payment_reference", reference).
		WhereNull("deleted_at").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return order, nil
}

// Track resolves an order by number and contact email for the public tracking
// page. Email matching runs against the decrypted column value.
func (os *OrderService) Track(ctx context.Context, orderNumber, email string) (*structs.OrderTrackResponse, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("order_number", strings.ToUpper(strings.TrimSpace(orderNumber))).
		WhereNull("deleted_at").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	storedEmail, err := lib.Decrypt(order.Email, os.cfg.Encryption.Key)
	if err != nil {
		os.logger.Error("Failed to decrypt order email", gecho.Field("error", err), gecho.Field("order_id", order.Id))
		return nil, lib.ErrNotFound
	}
	if !strings.EqualFold(strings.TrimSpace(email), storedEmail) {
		// Same response as a missing order so the endpoint cannot be used to
		// probe order numbers
		return nil, lib.ErrNotFound
	}

	items, err := database.Query[tables.OrderItem](os.db).Where("order_id", order.Id).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return buildTrackResponse(order, items), nil
}

func buildTrackResponse(order *tables.Order, items []tables.OrderItem) *structs.OrderTrackResponse {
	resp := &structs.OrderTrackResponse{
		OrderNumber:             order.OrderNumber,
		Status:                  string(order.Status),
		DeliveryStatus:          string(order.DeliveryStatus),
		DeliveryStatusDetail:    lib.DeliveryStatusDescription(order.DeliveryStatus),
		DeliveryProgressPercent: lib.DeliveryProgress(order.DeliveryStatus),
		TotalAmount:             order.TotalAmount,
		CurrencyCode:            order.CurrencyCode,
		CreatedAt:               order.CreatedAt.Format(time.RFC3339),
	}
	if order.EstimatedArrival != nil {
		formatted := order.EstimatedArrival.Format("2006-01-02")
		resp.EstimatedArrival = &formatted
	}
	for _, item := range items {
		resp.Items = append(resp.Items, structs.OrderTrackItem{
			ProductTitle: item.ProductTitle,
			VariantTitle: item.VariantTitle,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal,
		})
	}
	return resp
}

// ListForUser returns a customer's order history, newest first.
func (os *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]tables.Order, error) {
	orders, err := database.Query[tables.Order](os.db).
		Where("user_id", userID).
		WhereNull("deleted_at").
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return orders, nil
}

// AdminList returns paginated orders with optional status filters.
func (os *OrderService) AdminList(ctx context.Context, page, pageSize int, status, deliveryStatus string) (*database.PaginationResult[tables.Order], error) {
	query := database.Query[tables.Order](os.db).
		WhereNull("deleted_at").
		OrderBy("created_at", database.DESC)

	if status != "" {
		query = query.Where("status", status)
	}
	if deliveryStatus != "" {
		query = query.Where("delivery_status", deliveryStatus)
	}

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// AdminGet loads an order with decrypted contact fields and its items.
func (os *OrderService) AdminGet(ctx context.Context, id uuid.UUID) (*tables.Order, []tables.OrderItem, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", id).
		WhereNull("deleted_at").
		First(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, nil, lib.ErrNotFound
	}

	if err := os.decryptContact(order); err != nil {
		return nil, nil, err
	}

	items, err := database.Query[tables.OrderItem](os.db).Where("order_id", id).All(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}

	return order, items, nil
}

func (os *OrderService) decryptContact(order *tables.Order) error {
	var err error
	if order.CustomerName, err = lib.Decrypt(order.CustomerName, os.cfg.Encryption.Key); err != nil {
		return err
	}
	if order.Email, err = lib.Decrypt(order.Email, os.cfg.Encryption.Key); err != nil {
		return err
	}
	if order.Phone != "" {
		if order.Phone, err = lib.Decrypt(order.Phone, os.cfg.Encryption.Key); err != nil {
			return err
		}
	}
	return nil
}

// AdminUpdate applies status, delivery-status, tracking, and notes changes.
// Delivery-stage changes recompute the estimated arrival from today and
// notify the customer.
func (os *OrderService) AdminUpdate(ctx context.Context, id uuid.UUID, req *structs.OrderUpdateRequest) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", id).
		WhereNull("deleted_at").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	sets := map[string]any{"updated_at": time.Now()}
	deliveryChanged := false

	if req.Status != "" {
		next := tables.OrderStatus(req.Status)
		if next != order.Status {
			if !CanTransitionOrderStatus(order.Status, next) {
				return nil, lib.ErrInvalidTransition
			}
			sets["status"] = next
		}
	}

	if req.DeliveryStatus != "" {
		next := tables.DeliveryStatus(req.DeliveryStatus)
		if next != order.DeliveryStatus {
			if !CanTransitionDeliveryStatus(order.DeliveryStatus, next) {
				return nil, lib.ErrInvalidTransition
			}
			sets["delivery_status"] = next
			sets["estimated_arrival"] = lib.EstimateArrival(next, time.Now(), order.ShippingAddress.State)
			deliveryChanged = true
		}
	}

	if req.TrackingNumber != "" {
		sets["tracking_number"] = req.TrackingNumber
	}
	if req.Notes != "" {
		sets["notes"] = req.Notes
	}

	if _, err := database.Query[tables.Order](os.db).Where("id", id).Update(ctx, sets); err != nil {
		return nil, lib.MapPgError(err)
	}

	updated, _, err := os.AdminGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if deliveryChanged {
		email := updated.Email
		name := firstNameOf(updated.CustomerName)
		notify := *updated
		go func() {
			if err := os.emailService.SendDeliveryUpdateEmail(email, name, &notify); err != nil {
				os.logger.Error("Failed to send delivery update email", gecho.Field("error", err), gecho.Field("order_number", notify.OrderNumber))
			}
		}()
	}

	return updated, nil
}

// AdminDelete soft-deletes an order.
func (os *OrderService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Order](os.db).
		Where("id", id).
		WhereNull("deleted_at").
		Update(ctx, map[string]any{"deleted_at": time.Now()})
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// Stats aggregates order counts and revenue for the admin dashboard.
func (os *OrderService) Stats(ctx context.Context) (*structs.OrderStats, error) {
	stats := &structs.OrderStats{CountsByStatus: map[string]int{}}

	type statusCount struct {
		Status string `bun:"status"`
		Count  int    `bun:"count"`
	}
	rows, err := database.RawQuery[statusCount](os.db, ctx,
		"SELECT status, COUNT(*) AS count FROM orders WHERE deleted_at IS NULL GROUP BY status")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.CountsByStatus[row.Status] = row.Count
		stats.TotalOrders += row.Count
	}

	type revenueRow struct {
		Revenue uint64 `bun:"revenue"`
	}
	revenue, err := database.RawQuery[revenueRow](os.db, ctx,
		"SELECT COALESCE(SUM(total_amount), 0) AS revenue FROM orders WHERE deleted_at IS NULL AND status IN ('processing', 'completed')")
	if err != nil {
		return nil, err
	}
	if len(revenue) > 0 {
		stats.RevenueKobo = revenue[0].Revenue
	}

	customCount, err := database.Query[tables.Order](os.db).
		Where("order_type", tables.OrderTypeCustom).
		WhereNull("deleted_at").
		Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	stats.CustomOrders = customCount

	return stats, nil
}

func firstNameOf(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "customer"
	}
	return parts[0]
}
