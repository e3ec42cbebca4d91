package services

import (
	"context"
	"encoding/json"
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

// CustomOrderService runs the request-and-quote workflow: customers submit a
// design brief, the studio answers with versioned quotes, and an accepted
// quote is paid through the gateway and converted into an order.
type CustomOrderService struct {
	logger          *gecho.Logger
	cfg             *structs.Config
	db              *database.DB
	emailService    *EmailService
	paystackService *PaystackService
	mediaService    *MediaService
	cacheService    *CacheService
}

func NewCustomOrderService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, emailService *EmailService, paystackService *PaystackService, mediaService *MediaService, cacheService *CacheService) *CustomOrderService {
	return &CustomOrderService{
		logger:          logger,
		cfg:             cfg,
		db:              db,
		emailService:    emailService,
		paystackService: paystackService,
		mediaService:    mediaService,
		cacheService:    cacheService,
	}
}

var customRequestTransitions = map[tables.CustomOrderRequestStatus][]tables.CustomOrderRequestStatus{
	tables.CustomRequestStatusSubmitted:       {tables.CustomRequestStatusUnderReview, tables.CustomRequestStatusRejected, tables.CustomRequestStatusCancelled},
	tables.CustomRequestStatusUnderReview:     {tables.CustomRequestStatusQuoted, tables.CustomRequestStatusRejected, tables.CustomRequestStatusCancelled},
	tables.CustomRequestStatusQuoted:          {tables.CustomRequestStatusAwaitingPayment, tables.CustomRequestStatusUnderReview, tables.CustomRequestStatusCancelled},
	tables.CustomRequestStatusAwaitingPayment: {tables.CustomRequestStatusPaid, tables.CustomRequestStatusQuoted, tables.CustomRequestStatusCancelled},
	tables.CustomRequestStatusPaid:            {tables.CustomRequestStatusInProduction},
	tables.CustomRequestStatusInProduction:    {tables.CustomRequestStatusCompleted},
}

// CanTransitionRequestStatus reports whether a request status change is allowed.
func CanTransitionRequestStatus(from, to tables.CustomOrderRequestStatus) bool {
	for _, allowed := range customRequestTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CreateRequest files a new design brief and notifies both sides.
func (cos *CustomOrderService) CreateRequest(ctx context.Context, req *structs.CustomOrderRequestCreate, userID *uuid.UUID) (*tables.CustomOrderRequest, error) {
	if !cos.cfg.CustomOrders.Enabled {
		return nil, lib.ErrFeatureDisabled
	}

	record := &tables.CustomOrderRequest{
		RequestNumber:    lib.GenerateRequestNumber(),
		UserId:           userID,
		CustomerName:     strings.TrimSpace(req.CustomerName),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            strings.TrimSpace(req.Phone),
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		SizeNotes:        req.SizeNotes,
		ColorPreferences: req.ColorPreferences,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		ReferenceImages:  req.ReferenceImages,
		CustomerNotes:    req.CustomerNotes,
		Status:           tables.CustomRequestStatusSubmitted,
		CurrencyCode:     cos.cfg.Checkout.CurrencyCode,
	}
	if req.DesiredDate != "" {
		t, err := time.Parse("2006-01-02", req.DesiredDate)
		if err != nil {
			return nil, err
		}
		record.DesiredDate = &t
	}
	if len(record.ReferenceImages) > cos.cfg.CustomOrders.MaxReferenceImages {
		record.ReferenceImages = record.ReferenceImages[:cos.cfg.CustomOrders.MaxReferenceImages]
	}

	created, err := database.Query[tables.CustomOrderRequest](cos.db).Insert(ctx, record)
	if err != nil {
		cos.logger.Error("Failed to create custom order request", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	cos.logger.Info("Custom order request created", gecho.Field("request_number", created.RequestNumber))

	go func() {
		if err := cos.emailService.SendCustomOrderReceivedEmail(created.Email, firstNameOf(created.CustomerName), created); err != nil {
			cos.logger.Error("Failed to send request confirmation", gecho.Field("error", err), gecho.Field("request_number", created.RequestNumber))
		}
		if err := cos.emailService.SendAdminCustomOrderNotice(created); err != nil {
			cos.logger.Error("Failed to send admin request notice", gecho.Field("error", err))
		}
	}()

	return created, nil
}

// TrackRequest resolves a request by number and email for the public page.
func (cos *CustomOrderService) TrackRequest(ctx context.Context, requestNumber, email string) (*tables.CustomOrderRequest, error) {
	request, err := database.Query[tables.CustomOrderRequest](cos.db).
		Where("request_number", strings.ToUpper(strings.TrimSpace(requestNumber))).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if request == nil || !strings.EqualFold(request.Email, strings.TrimSpace(email)) {
		return nil, lib.ErrNotFound
	}

	request.AdminNotes = ""
	return request, nil
}

// AttachReferenceImage normalizes and uploads a customer reference image,
// appending its hosted URL to the request. Upload volume per request is rate
// limited in Redis.
func (cos *CustomOrderService) AttachReferenceImage(ctx context.Context, requestNumber, email string, data []byte, filename string) (string, error) {
	request, err := cos.TrackRequest(ctx, requestNumber, email)
	if err != nil {
		return "", err
	}

	if len(request.ReferenceImages) >= cos.cfg.CustomOrders.MaxReferenceImages {
		return "", lib.ErrTooManyImages
	}

	count, err := cos.cacheService.IncrementUploadCount(request.Id, cos.cfg.CustomOrders.UploadRateLimitWindow)
	if err != nil {
		cos.logger.Warn("Upload rate limit check failed", gecho.Field("error", err))
	} else if count > cos.cfg.CustomOrders.UploadRateLimit {
		return "", lib.ErrRateLimited
	}

	normalized, err := cos.mediaService.NormalizeImage(data)
	if err != nil {
		return "", err
	}

	result, err := cos.mediaService.Upload(ctx, normalized, filename)
	if err != nil {
		return "", err
	}

	images := append(request.ReferenceImages, result.SecureURL)
	if _, err := database.Query[tables.CustomOrderRequest](cos.db).
		Where("id", request.Id).
		Update(ctx, map[string]any{
			"reference_images": images,
			"updated_at":       time.Now(),
		}); err != nil {
		return "", lib.MapPgError(err)
	}

	return result.SecureURL, nil
}

// ============================================================================
// Admin
// ============================================================================

func (cos *CustomOrderService) AdminListRequests(ctx context.Context, page, pageSize int, status string) (*database.PaginationResult[tables.CustomOrderRequest], error) {
	query := database.Query[tables.CustomOrderRequest](cos.db).OrderBy("created_at", database.DESC)
	if status != "" {
		query = query.Where("status", status)
	}

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (cos *CustomOrderService) AdminGetRequest(ctx context.Context, id uuid.UUID) (*tables.CustomOrderRequest, []tables.CustomOrderQuote, error) {
	request, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}
	if request == nil {
		return nil, nil, lib.ErrNotFound
	}

	quotes, err := database.Query[tables.CustomOrderQuote](cos.db).
		Where("request_id", id).
		OrderBy("version", database.DESC).
		All(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}

	return request, quotes, nil
}

// AdminUpdateRequest applies a status change or admin notes.
func (cos *CustomOrderService) AdminUpdateRequest(ctx context.Context, id uuid.UUID, req *structs.CustomOrderRequestUpdate) (*tables.CustomOrderRequest, error) {
	request, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if request == nil {
		return nil, lib.ErrNotFound
	}

	sets := map[string]any{"updated_at": time.Now()}

	if req.Status != "" {
		next := tables.CustomOrderRequestStatus(req.Status)
		if next != request.Status {
			if !CanTransitionRequestStatus(request.Status, next) {
				return nil, lib.ErrInvalidTransition
			}
			sets["status"] = next
		}
	}
	if req.AdminNotes != "" {
		sets["admin_notes"] = req.AdminNotes
	}

	if _, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", id).Update(ctx, sets); err != nil {
		return nil, lib.MapPgError(err)
	}

	return database.Query[tables.CustomOrderRequest](cos.db).Where("id", id).First(ctx)
}

// IssueQuote creates the next quote version for a request, expires any open
// earlier version, and emails the customer a single-use access link.
func (cos *CustomOrderService) IssueQuote(ctx context.Context, requestID uuid.UUID, req *structs.QuoteIssueRequest, issuedBy string) (*tables.CustomOrderQuote, error) {
	request, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", requestID).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if request == nil {
		return nil, lib.ErrNotFound
	}
	if request.PaidAt != nil {
		return nil, lib.ErrQuoteAlreadyPaid
	}

	expiresAt := time.Now().Add(cos.cfg.CustomOrders.QuoteTTL)
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, err
		}
		expiresAt = t
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = cos.cfg.Checkout.CurrencyCode
	}

	var quote *tables.CustomOrderQuote
	rawToken, err := lib.GenerateRandomToken(32)
	if err != nil {
		return nil, err
	}

	err = database.RunInTx(ctx, cos.db, func(ctx context.Context, tx bun.Tx) error {
		// Supersede any open quote for this request
		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderQuote)(nil)).
			Set("status = ?", tables.QuoteStatusExpired).
			Set("updated_at = ?", time.Now()).
			Where("request_id = ?", requestID).
			Where("status IN (?, ?)", tables.QuoteStatusSent, tables.QuoteStatusAccepted).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		var maxVersion int
		if err := tx.NewSelect().
			Model((*tables.CustomOrderQuote)(nil)).
			ColumnExpr("COALESCE(MAX(version), 0)").
			Where("request_id = ?", requestID).
			Scan(ctx, &maxVersion); err != nil {
			return lib.MapPgError(err)
		}

		quote = &tables.CustomOrderQuote{
			RequestId:    requestID,
			Version:      maxVersion + 1,
			Amount:       req.Amount,
			CurrencyCode: currency,
			Breakdown:    req.Breakdown,
			Note:         req.Note,
			Status:       tables.QuoteStatusSent,
			ExpiresAt:    &expiresAt,
			CreatedBy:    issuedBy,
		}
		if _, err := tx.NewInsert().Model(quote).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		token := &tables.CustomOrderQuoteToken{
			QuoteId:   quote.Id,
			TokenHash: lib.HashToken(rawToken),
			ExpiresAt: time.Now().Add(cos.cfg.CustomOrders.TokenTTL),
		}
		if _, err := tx.NewInsert().Model(token).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderRequest)(nil)).
			Set("status = ?", tables.CustomRequestStatusQuoted).
			Set("quoted_amount = ?", req.Amount).
			Set("currency_code = ?", currency).
			Set("quote_expires_at = ?", expiresAt).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", requestID).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		return nil
	})
	if err != nil {
		cos.logger.Error("Failed to issue quote", gecho.Field("error", err), gecho.Field("request_id", requestID))
		return nil, err
	}

	cos.logger.Info("Quote issued",
		gecho.Field("request_number", request.RequestNumber),
		gecho.Field("version", quote.Version),
		gecho.Field("amount", quote.Amount),
	)

	go func() {
		if err := cos.emailService.SendQuoteEmail(request.Email, firstNameOf(request.CustomerName), request, quote, rawToken); err != nil {
			cos.logger.Error("Failed to send quote email", gecho.Field("error", err), gecho.Field("request_number", request.RequestNumber))
		}
	}()

	return quote, nil
}

// ResolveToken validates a raw quote token and loads the quote and request it
// grants access to. Viewing does not consume the token; it is marked used
// when the payment settles.
func (cos *CustomOrderService) ResolveToken(ctx context.Context, rawToken string) (*tables.CustomOrderQuoteToken, *tables.CustomOrderQuote, *tables.CustomOrderRequest, error) {
	token, err := database.Query[tables.CustomOrderQuoteToken](cos.db).
		Where("token_hash", lib.HashToken(rawToken)).
		First(ctx)
	if err != nil {
		return nil, nil, nil, lib.MapPgError(err)
	}
	if token == nil || token.UsedAt != nil {
		return nil, nil, nil, lib.ErrInvalidToken
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, nil, nil, lib.ErrExpiredToken
	}

	quote, err := database.Query[tables.CustomOrderQuote](cos.db).Where("id", token.QuoteId).First(ctx)
	if err != nil {
		return nil, nil, nil, lib.MapPgError(err)
	}
	if quote == nil {
		return nil, nil, nil, lib.ErrInvalidToken
	}

	request, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", quote.RequestId).First(ctx)
	if err != nil {
		return nil, nil, nil, lib.MapPgError(err)
	}
	if request == nil {
		return nil, nil, nil, lib.ErrInvalidToken
	}

	request.AdminNotes = ""
	return token, quote, request, nil
}

// InitializeQuotePayment optimistically accepts the quote, flips the request
// to awaiting payment, and starts a gateway transaction. If the customer
// abandons the charge, the sweep or a failed verify rolls the flip back.
func (cos *CustomOrderService) InitializeQuotePayment(ctx context.Context, rawToken string) (*structs.CheckoutInitializeResponse, *structs.QuoteSession, error) {
	_, quote, request, err := cos.ResolveToken(ctx, rawToken)
	if err != nil {
		return nil, nil, err
	}

	switch quote.Status {
	case tables.QuoteStatusPaid:
		return nil, nil, lib.ErrQuoteAlreadyPaid
	case tables.QuoteStatusExpired, tables.QuoteStatusRejected:
		return nil, nil, lib.ErrQuoteExpired
	}
	if quote.ExpiresAt != nil && time.Now().After(*quote.ExpiresAt) {
		return nil, nil, lib.ErrQuoteExpired
	}

	err = database.RunInTx(ctx, cos.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderQuote)(nil)).
			Set("status = ?", tables.QuoteStatusAccepted).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", quote.Id).
			Where("status IN (?, ?)", tables.QuoteStatusSent, tables.QuoteStatusAccepted).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderRequest)(nil)).
			Set("status = ?", tables.CustomRequestStatusAwaitingPayment).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", request.Id).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	initReq := &structs.PaystackInitializeRequest{
		Email:       request.Email,
		Amount:      quote.Amount,
		Currency:    quote.CurrencyCode,
		CallbackURL: cos.cfg.Server.FrontendURL + "/custom-orders/callback",
		Metadata: structs.PaystackMetadata{
			CustomerName:        request.CustomerName,
			Phone:               request.Phone,
			CustomQuoteId:       quote.Id.String(),
			CustomRequestId:     request.Id.String(),
			CustomRequestNumber: request.RequestNumber,
		},
	}

	resp, err := cos.paystackService.InitializeTransaction(ctx, initReq)
	if err != nil {
		// Roll the optimistic flip back so the quote stays payable
		cos.revertAcceptance(context.WithoutCancel(ctx), quote.Id, request.Id)
		return nil, nil, err
	}

	session := &structs.QuoteSession{
		QuoteId:      quote.Id,
		RequestId:    request.Id,
		TokenHash:    lib.HashToken(rawToken),
		Email:        request.Email,
		CustomerName: request.CustomerName,
		Amount:       quote.Amount,
		CurrencyCode: quote.CurrencyCode,
	}

	return &structs.CheckoutInitializeResponse{
		AuthorizationURL: resp.Data.AuthorizationURL,
		Reference:        resp.Data.Reference,
	}, session, nil
}

func (cos *CustomOrderService) revertAcceptance(ctx context.Context, quoteID, requestID uuid.UUID) {
	err := database.RunInTx(ctx, cos.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderQuote)(nil)).
			Set("status = ?", tables.QuoteStatusSent).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", quoteID).
			Where("status = ?", tables.QuoteStatusAccepted).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderRequest)(nil)).
			Set("status = ?", tables.CustomRequestStatusQuoted).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", requestID).
			Where("status = ?", tables.CustomRequestStatusAwaitingPayment).
			Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		cos.logger.Error("Failed to revert quote acceptance", gecho.Field("error", err), gecho.Field("quote_id", quoteID))
	}
}

// VerifyQuotePayment reconciles a gateway callback for a quote charge. On a
// settled charge it marks the quote paid, consumes the token, converts the
// request into a production order, and confirms by email. On anything else
// the optimistic acceptance is reverted.
func (cos *CustomOrderService) VerifyQuotePayment(ctx context.Context, reference string, session *structs.QuoteSession) (*tables.Order, error) {
	quote, err := database.Query[tables.CustomOrderQuote](cos.db).Where("id", session.QuoteId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if quote == nil {
		return nil, lib.ErrNotFound
	}

	request, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", session.RequestId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if request == nil {
		return nil, lib.ErrNotFound
	}

	// Replay: the converted order already exists
	if request.ConvertedOrderId != nil {
		existing, err := database.Query[tables.Order](cos.db).Where("id", *request.ConvertedOrderId).First(ctx)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return existing, nil
	}

	verify, err := cos.paystackService.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}
	if verify.Data.Status != "success" {
		cos.revertAcceptance(ctx, quote.Id, request.Id)
		return nil, lib.ErrPaymentNotSettled
	}
	if verify.Data.Amount != quote.Amount {
		cos.logger.Error("Quote payment amount mismatch",
			gecho.Field("reference", reference),
			gecho.Field("paid", verify.Data.Amount),
			gecho.Field("expected", quote.Amount),
		)
		return nil, lib.ErrAmountMismatch
	}

	encryptedName, err := lib.Encrypt(request.CustomerName, cos.cfg.Encryption.Key)
	if err != nil {
		return nil, err
	}
	encryptedEmail, err := lib.Encrypt(request.Email, cos.cfg.Encryption.Key)
	if err != nil {
		return nil, err
	}
	encryptedPhone := ""
	if request.Phone != "" {
		if encryptedPhone, err = lib.Encrypt(request.Phone, cos.cfg.Encryption.Key); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := &tables.Order{
		OrderNumber:          lib.GenerateOrderNumber(),
		UserId:               request.UserId,
		CustomerName:         encryptedName,
		Email:                encryptedEmail,
		Phone:                encryptedPhone,
		SubtotalAmount:       quote.Amount,
		TotalAmount:          quote.Amount,
		CurrencyCode:         quote.CurrencyCode,
		PaymentReference:     reference,
		Status:               tables.OrderStatusProcessing,
		DeliveryStatus:       tables.DeliveryStatusProduction,
		EstimatedArrival:     lib.EstimateArrival(tables.DeliveryStatusProduction, now, ""),
		OrderType:            tables.OrderTypeCustom,
		CustomOrderRequestId: &request.Id,
	}

	err = database.RunInTx(ctx, cos.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		item := &tables.OrderItem{
			OrderId:      order.Id,
			ProductId:    uuid.Nil,
			ProductTitle: "Custom order " + request.RequestNumber + ": " + request.Title,
			Quantity:     1,
			UnitPrice:    quote.Amount,
			LineTotal:    quote.Amount,
			CurrencyCode: quote.CurrencyCode,
		}
		if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderQuote)(nil)).
			Set("status = ?", tables.QuoteStatusPaid).
			Set("updated_at = ?", now).
			Where("id = ?", quote.Id).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderRequest)(nil)).
			Set("status = ?", tables.CustomRequestStatusPaid).
			Set("paid_at = ?", now).
			Set("converted_order_id = ?", order.Id).
			Set("updated_at = ?", now).
			Where("id = ?", request.Id).
			Where("converted_order_id IS NULL").
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderQuoteToken)(nil)).
			Set("used_at = ?", now).
			Where("token_hash = ?", session.TokenHash).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		return nil
	})
	if err != nil {
		if err == lib.ErrConflict {
			// Concurrent verify settled first; return its order
			existing, lookupErr := database.Query[tables.Order](cos.db).Where("payment_reference", reference).First(ctx)
			if lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		cos.logger.Error("Failed to settle quote payment", gecho.Field("error", err), gecho.Field("reference", reference))
		return nil, err
	}

	cos.logger.Info("Custom order paid",
		gecho.Field("request_number", request.RequestNumber),
		gecho.Field("order_number", order.OrderNumber),
	)

	go func() {
		if err := cos.emailService.SendCustomOrderPaidEmail(request.Email, firstNameOf(request.CustomerName), request, order.OrderNumber); err != nil {
			cos.logger.Error("Failed to send custom order paid email", gecho.Field("error", err))
		}
	}()

	return order, nil
}

// ============================================================================
// Sweep
// ============================================================================

// SweepResult summarizes one pass of the scheduled quote maintenance job.
type SweepResult struct {
	Expired   int `json:"expired"`
	Reminded  int `json:"reminded"`
	Cancelled int `json:"cancelled"`
}

// Sweep expires lapsed quotes, sends reminders ahead of expiry, and
// auto-cancels long-stale quoted requests. It is triggered by an external
// scheduler hitting the cron endpoint.
func (cos *CustomOrderService) Sweep(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	now := time.Now()
	batch := cos.cfg.CustomOrders.SweepBatchSize

	// Expire lapsed open quotes
	lapsed, err := database.Query[tables.CustomOrderQuote](cos.db).
		WhereIn("status", []any{string(tables.QuoteStatusSent), string(tables.QuoteStatusAccepted)}).
		WhereNotNull("expires_at").
		WhereOp("expires_at", "<", now).
		Limit(batch).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range lapsed {
		quote := &lapsed[i]
		if err := cos.expireQuote(ctx, quote); err != nil {
			cos.logger.Error("Failed to expire quote", gecho.Field("error", err), gecho.Field("quote_id", quote.Id))
			continue
		}
		result.Expired++
	}

	// Reminders for quotes nearing expiry
	reminded, err := cos.sendReminders(ctx, now, batch)
	if err != nil {
		return nil, err
	}
	result.Reminded = reminded

	// Auto-cancel requests stuck in quoted after the grace period
	if cos.cfg.CustomOrders.AutoCancelAfter > 0 {
		cutoff := now.Add(-cos.cfg.CustomOrders.AutoCancelAfter)
		cancelled, err := database.Query[tables.CustomOrderRequest](cos.db).
			Where("status", tables.CustomRequestStatusQuoted).
			WhereNotNull("quote_expires_at").
			WhereOp("quote_expires_at", "<", cutoff).
			Update(ctx, map[string]any{
				"status":     tables.CustomRequestStatusCancelled,
				"updated_at": now,
			})
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		result.Cancelled = int(cancelled)
	}

	cos.logger.Info("Quote sweep completed",
		gecho.Field("expired", result.Expired),
		gecho.Field("reminded", result.Reminded),
		gecho.Field("cancelled", result.Cancelled),
	)

	return result, nil
}

func (cos *CustomOrderService) expireQuote(ctx context.Context, quote *tables.CustomOrderQuote) error {
	now := time.Now()

	err := database.RunInTx(ctx, cos.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderQuote)(nil)).
			Set("status = ?", tables.QuoteStatusExpired).
			Set("updated_at = ?", now).
			Where("id = ?", quote.Id).
			Where("status IN (?, ?)", tables.QuoteStatusSent, tables.QuoteStatusAccepted).
			Exec(ctx); err != nil {
			return err
		}

		// Awaiting-payment requests fall back to quoted; the customer can ask
		// for a fresh quote
		if _, err := tx.NewUpdate().
			Model((*tables.CustomOrderRequest)(nil)).
			Set("status = ?", tables.CustomRequestStatusQuoted).
			Set("updated_at = ?", now).
			Where("id = ?", quote.RequestId).
			Where("status = ?", tables.CustomRequestStatusAwaitingPayment).
			Exec(ctx); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	if quote.ExpiredNotificationSentAt == nil {
		request, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", quote.RequestId).First(ctx)
		if err != nil || request == nil {
			return err
		}

		if err := cos.emailService.SendQuoteExpiredEmail(request.Email, firstNameOf(request.CustomerName), request); err != nil {
			cos.logger.Error("Failed to send quote expired email", gecho.Field("error", err))
			return nil
		}
		if _, err := database.Query[tables.CustomOrderQuote](cos.db).
			Where("id", quote.Id).
			Update(ctx, map[string]any{"expired_notification_sent_at": time.Now()}); err != nil {
			return err
		}
	}

	return nil
}

// sendReminders nudges customers whose open quote crosses a configured
// time-left threshold. ReminderCount tracks how many thresholds have fired so
// each sends at most once.
func (cos *CustomOrderService) sendReminders(ctx context.Context, now time.Time, batch int) (int, error) {
	thresholds := cos.cfg.CustomOrders.ReminderThresholds
	if len(thresholds) == 0 {
		return 0, nil
	}

	open, err := database.Query[tables.CustomOrderQuote](cos.db).
		Where("status", tables.QuoteStatusSent).
		WhereNotNull("expires_at").
		WhereOp("expires_at", ">", now).
		Limit(batch).
		All(ctx)
	if err != nil {
		return 0, lib.MapPgError(err)
	}

	sent := 0
	for i := range open {
		quote := &open[i]
		remaining := quote.ExpiresAt.Sub(now)

		// Count thresholds already crossed; thresholds are ordered longest first
		crossed := 0
		for _, threshold := range thresholds {
			if remaining <= threshold {
				crossed++
			}
		}
		if crossed <= quote.ReminderCount {
			continue
		}

		request, err := database.Query[tables.CustomOrderRequest](cos.db).Where("id", quote.RequestId).First(ctx)
		if err != nil || request == nil {
			continue
		}

		// Re-issue a view token alongside the reminder; the original may have
		// a shorter life than the quote
		rawToken, err := lib.GenerateRandomToken(32)
		if err != nil {
			continue
		}
		token := &tables.CustomOrderQuoteToken{
			QuoteId:   quote.Id,
			TokenHash: lib.HashToken(rawToken),
			ExpiresAt: now.Add(cos.cfg.CustomOrders.TokenTTL),
		}
		if _, err := database.Query[tables.CustomOrderQuoteToken](cos.db).Insert(ctx, token); err != nil {
			continue
		}

		if err := cos.emailService.SendQuoteReminderEmail(request.Email, firstNameOf(request.CustomerName), request, quote, rawToken); err != nil {
			cos.logger.Error("Failed to send quote reminder", gecho.Field("error", err), gecho.Field("quote_id", quote.Id))
			continue
		}

		if _, err := database.Query[tables.CustomOrderQuote](cos.db).
			Where("id", quote.Id).
			Update(ctx, map[string]any{
				"reminder_count": crossed,
				"updated_at":     now,
			}); err != nil {
			cos.logger.Error("Failed to record reminder", gecho.Field("error", err), gecho.Field("quote_id", quote.Id))
			continue
		}
		sent++
	}

	return sent, nil
}

// EncodeQuoteSession seals a quote payment session into the intent cookie value.
func (cos *CustomOrderService) EncodeQuoteSession(session *structs.QuoteSession) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	return lib.Encrypt(string(payload), cos.cfg.Encryption.Key)
}

// DecodeQuoteSession opens an intent cookie value back into a quote session.
func (cos *CustomOrderService) DecodeQuoteSession(value string) (*structs.QuoteSession, error) {
	payload, err := lib.Decrypt(value, cos.cfg.Encryption.Key)
	if err != nil {
		return nil, lib.ErrInvalidToken
	}

	var session structs.QuoteSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, lib.ErrInvalidToken
	}
	return &session, nil
}
