package services

import (
	"context"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"ileke_server/database"
	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	emailService *EmailService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, emailService *EmailService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		emailService: emailService,
	}
}

// AdminLogin verifies back-office credentials and returns a signed JWT.
func (as *AuthService) AdminLogin(req *structs.AdminLoginRequest) (string, *tables.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := database.Query[tables.Admin](as.db).Where("email", email).First(context.Background())
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during admin login", gecho.Field("error", mappedErr))
		}
		// Always return invalid credentials so account existence never leaks
		return "", nil, lib.ErrInvalidCredentials
	}
	if admin == nil {
		as.logger.Debug("Admin not found during login attempt", gecho.Field("identifier", email))
		return "", nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(req.Password, admin.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("admin_id", admin.Id))
		return "", nil, lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Invalid password attempt", gecho.Field("identifier", email))
		return "", nil, lib.ErrInvalidCredentials
	}

	token, err := lib.GenerateAccessToken(admin.Id, admin.Email, admin.Role)
	if err != nil {
		as.logger.Error("Failed to sign access token", gecho.Field("error", err), gecho.Field("admin_id", admin.Id))
		return "", nil, err
	}

	admin.PasswordHash = ""
	return token, admin, nil
}

// RequestMagicLink issues a single-use sign-in token and emails it. The
// response is identical whether or not the address is known, so the endpoint
// cannot be used to probe for accounts.
func (as *AuthService) RequestMagicLink(req *structs.MagicLinkRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	token, err := lib.GenerateRandomToken(32)
	if err != nil {
		as.logger.Error("Failed to generate magic link token", gecho.Field("error", err))
		return err
	}

	expiresAt := time.Now().Add(as.cfg.Auth.MagicLinkExpiry)

	record := &tables.MagicLinkToken{
		Email:     email,
		TokenHash: lib.HashToken(token),
		ExpiresAt: expiresAt,
	}
	if _, err := database.Query[tables.MagicLinkToken](as.db).Insert(context.Background(), record); err != nil {
		as.logger.Error("Failed to store magic link token", gecho.Field("error", err))
		return err
	}

	// Send asynchronously; a slow mail provider should not block the handler
	go func() {
		if err := as.emailService.SendMagicLinkEmail(email, token, expiresAt); err != nil {
			as.logger.Error("Failed to send magic link email", gecho.Field("error", err), gecho.Field("email", email))
		}
	}()

	return nil
}

// ConsumeMagicLink validates a raw token, marks it used, upserts the customer
// account, and returns a signed session cookie value.
func (as *AuthService) ConsumeMagicLink(token string) (string, *tables.User, error) {
	ctx := context.Background()
	hash := lib.HashToken(token)

	record, err := database.Query[tables.MagicLinkToken](as.db).
		Where("token_hash", hash).
		WhereNull("used_at").
		First(ctx)
	if err != nil {
		as.logger.Error("Failed to look up magic link token", gecho.Field("error", lib.MapPgError(err)))
		return "", nil, lib.ErrInvalidToken
	}
	if record == nil {
		return "", nil, lib.ErrInvalidToken
	}
	if time.Now().After(record.ExpiresAt) {
		return "", nil, lib.ErrExpiredToken
	}

	// Mark used before issuing the session so a replayed link fails
	affected, err := database.Query[tables.MagicLinkToken](as.db).
		Where("id", record.Id).
		WhereNull("used_at").
		Update(ctx, map[string]any{"used_at": time.Now()})
	if err != nil {
		as.logger.Error("Failed to mark magic link token used", gecho.Field("error", err))
		return "", nil, err
	}
	if affected == 0 {
		// Another request consumed it first
		return "", nil, lib.ErrInvalidToken
	}

	user, err := as.findOrCreateUser(ctx, record.Email)
	if err != nil {
		return "", nil, err
	}

	session, err := lib.CreateUserSession(user.Id, user.Email)
	if err != nil {
		as.logger.Error("Failed to sign user session", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return "", nil, err
	}

	return session, user, nil
}

func (as *AuthService) findOrCreateUser(ctx context.Context, email string) (*tables.User, error) {
	user, err := database.Query[tables.User](as.db).Where("email", email).First(ctx)
	if err != nil {
		as.logger.Error("Failed to look up user", gecho.Field("error", lib.MapPgError(err)))
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = database.Query[tables.User](as.db).Insert(ctx, &tables.User{Email: email})
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if mappedErr == lib.ErrConflict {
			// Concurrent first sign-in; the row exists now
			return database.Query[tables.User](as.db).Where("email", email).First(ctx)
		}
		as.logger.Error("Failed to create user", gecho.Field("error", mappedErr))
		return nil, err
	}

	as.logger.Info("New customer account created", gecho.Field("user_id", user.Id))
	return user, nil
}

// GetUser loads a customer by id, for session validation and profile reads.
func (as *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*tables.User, error) {
	user, err := database.Query[tables.User](as.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return user, nil
}

// UpdateProfile persists customer profile fields and saved addresses.
func (as *AuthService) UpdateProfile(ctx context.Context, userID string, updates map[string]any) (*tables.User, error) {
	allowed := map[string]bool{
		"name":             true,
		"phone":            true,
		"shipping_address": true,
		"billing_address":  true,
	}
	sets := make(map[string]any, len(updates))
	for k, v := range updates {
		if allowed[k] {
			sets[k] = v
		}
	}
	if len(sets) == 0 {
		return as.getUserByID(ctx, userID)
	}
	sets["updated_at"] = time.Now()

	if _, err := database.Query[tables.User](as.db).Where("id", userID).Update(ctx, sets); err != nil {
		as.logger.Error("Failed to update profile", gecho.Field("error", err), gecho.Field("user_id", userID))
		return nil, lib.MapPgError(err)
	}

	return as.getUserByID(ctx, userID)
}

func (as *AuthService) getUserByID(ctx context.Context, id string) (*tables.User, error) {
	user, err := database.Query[tables.User](as.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}
	return user, nil
}
