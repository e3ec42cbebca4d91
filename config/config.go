package config

import (
	"ileke_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "Ileke_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8084"),
				ServerURL:      getEnvAsString("SERVER_URL", "http://localhost:8084"),
				FrontendURL:    getEnvAsString("FRONTEND_URL", "http://localhost:3000"),
				CookieDomain:   getEnvAsString("COOKIE_DOMAIN", ""),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token"}),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "ileke_db"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:      getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:     getEnvAsString("REDIS_USERNAME", ""),
				Password:     getEnvAsString("REDIS_PASSWORD", ""),
				DB:           getEnvAsInt("REDIS_DB", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:  getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry: getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 12*time.Hour),
				SessionSecret:     getEnvAsString("AUTH_SESSION_SECRET", "default_session_secret"),
				SessionExpiry:     getEnvAsTimeDuration("AUTH_SESSION_EXPIRY", 7*24*time.Hour),
				MagicLinkExpiry:   getEnvAsTimeDuration("AUTH_MAGIC_LINK_EXPIRY", 30*time.Minute),
			},
			Encryption: &structs.EncryptionConfig{
				Key: getEnvAsString("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef"),
			},
			Email: &structs.EmailConfig{
				ApiKey:     getEnvAsString("RESEND_API_KEY", ""),
				From:       getEnvAsString("EMAIL_FROM", "Ileke <orders@ileke.ng>"),
				AdminInbox: getEnvAsSlice("EMAIL_ADMIN_INBOX", []string{}),
				ReplyTo:    getEnvAsString("EMAIL_REPLY_TO", "hello@ileke.ng"),
			},
			Paystack: &structs.PaystackConfig{
				SecretKey: getEnvAsString("PAYSTACK_SECRET_KEY", ""),
				BaseURL:   getEnvAsString("PAYSTACK_BASE_URL", "https://api.paystack.co"),
				Timeout:   getEnvAsTimeDuration("PAYSTACK_TIMEOUT", 15*time.Second),
			},
			Cloudinary: &structs.CloudinaryConfig{
				CloudName: getEnvAsString("CLOUDINARY_CLOUD_NAME", ""),
				ApiKey:    getEnvAsString("CLOUDINARY_API_KEY", ""),
				ApiSecret: getEnvAsString("CLOUDINARY_API_SECRET", ""),
				Folder:    getEnvAsString("CLOUDINARY_FOLDER", "ileke/custom-orders"),
				Timeout:   getEnvAsTimeDuration("CLOUDINARY_TIMEOUT", 30*time.Second),
			},
			Checkout: &structs.CheckoutConfig{
				ShippingFlatKobo: uint64(getEnvAsInt("CHECKOUT_SHIPPING_FLAT_KOBO", 200000)), // ₦2,000
				CurrencyCode:     getEnvAsString("CHECKOUT_CURRENCY", "NGN"),
				SessionExpiry:    getEnvAsTimeDuration("CHECKOUT_SESSION_EXPIRY", 30*time.Minute),
			},
			CustomOrders: &structs.CustomOrdersConfig{
				Enabled:               getEnvAsBool("CUSTOM_ORDERS_ENABLED", true),
				QuoteTTL:              getEnvAsTimeDuration("CUSTOM_ORDER_QUOTE_TTL", 7*24*time.Hour),
				TokenTTL:              getEnvAsTimeDuration("CUSTOM_ORDER_TOKEN_TTL", 7*24*time.Hour),
				CronSecret:            getEnvAsString("CRON_SECRET", ""),
				ReminderThresholds:    getEnvAsDurationSlice("CUSTOM_ORDER_REMINDER_THRESHOLDS", []time.Duration{24 * time.Hour, 2 * time.Hour}),
				AutoCancelAfter:       getEnvAsTimeDuration("CUSTOM_ORDER_AUTO_CANCEL_AFTER", 0),
				SweepBatchSize:        getEnvAsInt("CUSTOM_ORDER_SWEEP_BATCH_SIZE", 100),
				MaxReferenceImages:    getEnvAsInt("CUSTOM_ORDER_MAX_REFERENCE_IMAGES", 8),
				MaxUploadBytes:        int64(getEnvAsInt("CUSTOM_ORDER_MAX_UPLOAD_BYTES", 8<<20)),
				UploadRateLimit:       getEnvAsInt("CUSTOM_ORDER_UPLOAD_RATE_LIMIT", 20),
				UploadRateLimitWindow: getEnvAsTimeDuration("CUSTOM_ORDER_UPLOAD_RATE_WINDOW", 10*time.Minute),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", true),
				GeneralLimit:   getEnvAsInt("RATE_LIMIT_GENERAL", 120),
				GeneralWindow:  getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
				AuthLimit:      getEnvAsInt("RATE_LIMIT_AUTH", 10),
				AuthWindow:     getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),
				AdminLimit:     getEnvAsInt("RATE_LIMIT_ADMIN", 240),
				AdminWindow:    getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
				CheckoutLimit:  getEnvAsInt("RATE_LIMIT_CHECKOUT", 15),
				CheckoutWindow: getEnvAsTimeDuration("RATE_LIMIT_CHECKOUT_WINDOW", time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
