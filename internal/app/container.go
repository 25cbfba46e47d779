package app

import (
	"context"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Sushil1248/innfostride-backend/domain"
	"github.com/Sushil1248/innfostride-backend/internal/config"
	"github.com/Sushil1248/innfostride-backend/internal/infrastructure/auth"
	"github.com/Sushil1248/innfostride-backend/internal/infrastructure/database"
	"github.com/Sushil1248/innfostride-backend/internal/infrastructure/media"
	"github.com/Sushil1248/innfostride-backend/internal/infrastructure/notifications"
	"github.com/Sushil1248/innfostride-backend/internal/infrastructure/repositories"
	"github.com/Sushil1248/innfostride-backend/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	Mongo       *database.Mongo
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	// Repositories
	UserRepo    domain.UserRepository
	PostRepo    domain.PostRepository
	MetaRepo    domain.PostMetaRepository
	MediaRepo   domain.MediaRepository
	SidebarRepo domain.SidebarRepository
	SiteRepo    domain.SiteRepository
	AccessRepo  domain.AccessRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	AuthSvc     domain.AuthService
	OTPSvc      domain.OTPService
	PostSvc     domain.PostService
	MediaSvc    domain.MediaService
	SidebarSvc  domain.SidebarService
	PolicySvc   domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	mongo, err := database.ConnectMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	c.Mongo = mongo
	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	cas, err := auth.NewCasbinService(cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}
	c.Enforcer = cas.E

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := c.Mongo.DB
	c.UserRepo = repositories.NewUserRepository(db)
	c.PostRepo = repositories.NewPostRepository(db)
	c.MetaRepo = repositories.NewPostMetaRepository(db)
	c.MediaRepo = repositories.NewMediaRepository(db)
	c.SidebarRepo = repositories.NewSidebarRepository(db)
	c.SiteRepo = repositories.NewSiteRepository(db)
	c.AccessRepo = repositories.NewAccessRepository(db)
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.NormalTTL, cfg.StaySignedInTTL)

	emailSvc := notifications.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	smsSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	notifier := notifications.NewNotifier(emailSvc, smsSvc)

	renderer, err := notifications.NewTemplateRenderer(cfg.AppName, cfg.LogoURL)
	if err != nil {
		return err
	}

	uploader, err := media.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		return err
	}

	lockout := services.LockoutPolicy{
		MaxAttempts: cfg.MaxAttempts,
		FirstBlock:  cfg.FirstBlock,
		SecondBlock: cfg.SecondBlock,
	}
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.AccessRepo,
		c.PasswordSvc,
		c.TokenSvc,
		notifier,
		renderer,
		uploader,
		lockout,
		services.AuthConfig{
			OTPLength:        cfg.OTPLength,
			OTPTTL:           cfg.OTPTTL,
			OTPChannel:       cfg.OTPChannel,
			ResetTokenLength: cfg.ResetTokenLength,
			ResetTokenTTL:    cfg.ResetTokenTTL,
			FrontendURL:      cfg.FrontendURL,
			ResetPath:        cfg.ResetPath,
		},
	)

	c.OTPSvc = services.NewOTPService(c.UserRepo, notifier, renderer, c.RedisClient, services.OTPConfig{
		Length:       cfg.OTPLength,
		TTL:          cfg.ProfileOTPTTL,
		ResendWindow: cfg.OTPResendWindow,
	})

	categoryRepo := services.NewCategoryCache(
		repositories.NewCategoryRepository(c.Mongo.DB),
		c.RedisClient,
		10*time.Minute,
	)
	c.PostSvc = services.NewPostService(c.PostRepo, c.MetaRepo, c.MediaRepo, categoryRepo, c.SiteRepo)
	c.MediaSvc = services.NewMediaService(uploader, c.MediaRepo)
	c.SidebarSvc = services.NewSidebarService(c.SidebarRepo)
	c.PolicySvc = services.NewPolicyService(c.Enforcer)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.Mongo != nil {
		return c.Mongo.Close(context.Background())
	}
	return nil
}
