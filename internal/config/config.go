package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Name    string `yaml:"name"`
	LogoURL string `yaml:"logo_url"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	NormalTTL       string `yaml:"normal_ttl"`
	StaySignedInTTL string `yaml:"stay_signed_in_ttl"`
}

type LockoutConfig struct {
	MaxAttempts   int    `yaml:"max_attempts"`
	FirstBlock    string `yaml:"first_block"`
	SecondBlock   string `yaml:"second_block"`
}

type OTPConfig struct {
	Length       int    `yaml:"length"`
	TTL          string `yaml:"ttl"`
	ProfileTTL   string `yaml:"profile_ttl"`
	ResendWindow string `yaml:"resend_window"`
	Channel      string `yaml:"channel"` // "email" or "sms"
}

type ResetConfig struct {
	TokenLength int    `yaml:"token_length"`
	TTL         string `yaml:"ttl"`
	FrontendURL string `yaml:"frontend_url"`
	Path        string `yaml:"path"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App        AppConfig        `yaml:"app"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Lockout    LockoutConfig    `yaml:"lockout"`
	OTP        OTPConfig        `yaml:"otp"`
	Reset      ResetConfig      `yaml:"reset"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Twilio     TwilioConfig     `yaml:"twilio"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	Casbin     CasbinConfig     `yaml:"casbin"`
}

type Config struct {
	Port    string
	GinMode string
	AppName string
	LogoURL string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret       string
	JWTIssuer       string
	NormalTTL       time.Duration
	StaySignedInTTL time.Duration

	MaxAttempts int
	FirstBlock  time.Duration
	SecondBlock time.Duration

	OTPLength       int
	OTPTTL          time.Duration
	ProfileOTPTTL   time.Duration
	OTPResendWindow time.Duration
	OTPChannel      string

	ResetTokenLength int
	ResetTokenTTL    time.Duration
	FrontendURL      string
	ResetPath        string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// secrets, so the file can be committed without credentials.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	parse := func(name, value string, dst *time.Duration) {
		if err != nil {
			return
		}
		var d time.Duration
		if d, err = time.ParseDuration(value); err != nil {
			err = fmt.Errorf("invalid %s: %w", name, err)
			return
		}
		*dst = d
	}
	err = nil

	cfg := &Config{
		Port:             fmt.Sprintf("%d", file.App.Port),
		GinMode:          file.App.GinMode,
		AppName:          file.App.Name,
		LogoURL:          file.App.LogoURL,
		MongoURI:         env("MONGODB_URI", file.Mongo.URI),
		MongoDatabase:    file.Mongo.Database,
		RedisAddr:        env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:          file.Redis.DB,
		JWTSecret:        env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:        file.JWT.Issuer,
		MaxAttempts:      file.Lockout.MaxAttempts,
		OTPLength:        file.OTP.Length,
		OTPChannel:       file.OTP.Channel,
		ResetTokenLength: file.Reset.TokenLength,
		FrontendURL:      env("FRONTEND_APP_URL", file.Reset.FrontendURL),
		ResetPath:        file.Reset.Path,
		SMTPHost:         env("SMTP_HOST", file.SMTP.Host),
		SMTPPort:         file.SMTP.Port,
		SMTPUsername:     env("SMTP_USERNAME", file.SMTP.Username),
		SMTPPassword:     env("SMTP_PASSWORD", file.SMTP.Password),
		EmailFrom:        env("EMAIL_FROM", file.SMTP.From),
		TwilioSID:        env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:       file.Twilio.FromNumber,
		CloudinaryName:   env("CLOUDINARY_CLOUD_NAME", file.Cloudinary.CloudName),
		CloudinaryKey:    env("CLOUDINARY_API_KEY", file.Cloudinary.APIKey),
		CloudinarySecret: env("CLOUDINARY_API_SECRET", file.Cloudinary.APISecret),
		CasbinModelPath:  file.Casbin.ModelPath,
	}

	parse("jwt normal TTL", file.JWT.NormalTTL, &cfg.NormalTTL)
	parse("jwt stay-signed-in TTL", file.JWT.StaySignedInTTL, &cfg.StaySignedInTTL)
	parse("lockout first block", file.Lockout.FirstBlock, &cfg.FirstBlock)
	parse("lockout second block", file.Lockout.SecondBlock, &cfg.SecondBlock)
	parse("otp TTL", file.OTP.TTL, &cfg.OTPTTL)
	parse("profile otp TTL", file.OTP.ProfileTTL, &cfg.ProfileOTPTTL)
	parse("otp resend window", file.OTP.ResendWindow, &cfg.OTPResendWindow)
	parse("reset token TTL", file.Reset.TTL, &cfg.ResetTokenTTL)
	if err != nil {
		return nil, err
	}

	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("lockout max_attempts must be positive, got %d", cfg.MaxAttempts)
	}
	if cfg.OTPChannel == "" {
		cfg.OTPChannel = "email"
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
