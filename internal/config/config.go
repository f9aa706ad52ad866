package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Locale   LocaleConfig   `mapstructure:"locale"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// LoginRateLimit is the sustained number of authentication attempts
	// allowed per client IP per minute. LoginRateBurst is the burst size.
	LoginRateLimit int `mapstructure:"login_rate_limit" validate:"required,gt=0"`
	LoginRateBurst int `mapstructure:"login_rate_burst" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// Token lifetimes, in minutes. Guest tokens cover anonymous shopping
	// sessions; reset tokens cover the password recovery flow.
	TokenLifetimeMinutes        int `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	GuestTokenLifetimeMinutes   int `mapstructure:"guest_token_lifetime_minutes"   validate:"required,gt=0"`
	ResetTokenLifetimeMinutes   int `mapstructure:"reset_token_lifetime_minutes"   validate:"required,gt=0"`

	// BcryptCost controls the work factor used when hashing passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// LocaleConfig controls the multilingual field overlay.
type LocaleConfig struct {
	// Default is the locale used when the request carries no preference.
	Default string `mapstructure:"default" validate:"required"`

	// Supported lists the locales translations may be stored under.
	Supported []string `mapstructure:"supported" validate:"required,min=1"`
}
