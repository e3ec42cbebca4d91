package structs

import "time"

type Config struct {
	Server       *ServerConfig
	Cors         *CorsConfig
	Database     *DatabaseConfig
	Cache        *CacheConfig
	Auth         *AuthConfig
	Encryption   *EncryptionConfig
	Email        *EmailConfig
	Paystack     *PaystackConfig
	Cloudinary   *CloudinaryConfig
	Checkout     *CheckoutConfig
	CustomOrders *CustomOrdersConfig
	RateLimit    *RateLimitConfig
}

type ServerConfig struct {
	AppName        string // Ileke
	Environment    string // development, production
	Port           string // :8084
	ServerURL      string // public API origin, used in emails and callbacks
	FrontendURL    string // storefront origin, used in redirects
	CookieDomain   string // cross-subdomain cookie domain in production
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxRetries   int
}

type AuthConfig struct {
	// Admin JWT sessions
	AccessTokenSecret string
	AccessTokenExpiry time.Duration

	// Customer HMAC-signed sessions
	SessionSecret string
	SessionExpiry time.Duration

	MagicLinkExpiry time.Duration
}

type EncryptionConfig struct {
	Key string // 32 bytes, AES-256
}

type EmailConfig struct {
	ApiKey     string
	From       string
	AdminInbox []string // admin notification recipients
	ReplyTo    string
}

type PaystackConfig struct {
	SecretKey string
	BaseURL   string // https://api.paystack.co
	Timeout   time.Duration
}

type CloudinaryConfig struct {
	CloudName string
	ApiKey    string
	ApiSecret string
	Folder    string
	Timeout   time.Duration
}

type CheckoutConfig struct {
	ShippingFlatKobo uint64 // flat shipping fee in kobo
	CurrencyCode     string
	SessionExpiry    time.Duration // checkout intent cookie lifetime
}

type CustomOrdersConfig struct {
	Enabled               bool
	QuoteTTL              time.Duration // default quote validity
	TokenTTL              time.Duration // quote access token validity
	CronSecret            string
	ReminderThresholds    []time.Duration // time-left marks that trigger reminder emails
	AutoCancelAfter       time.Duration   // 0 disables auto-cancel of stale quoted requests
	SweepBatchSize        int
	MaxReferenceImages    int
	MaxUploadBytes        int64
	UploadRateLimit       int
	UploadRateLimitWindow time.Duration
}

type RateLimitConfig struct {
	Enabled        bool
	GeneralLimit   int
	GeneralWindow  time.Duration
	AuthLimit      int
	AuthWindow     time.Duration
	AdminLimit     int
	AdminWindow    time.Duration
	CheckoutLimit  int
	CheckoutWindow time.Duration
}
