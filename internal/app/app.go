package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sushil1248/innfostride-backend/internal/config"
	httpx "github.com/Sushil1248/innfostride-backend/internal/http"
	"github.com/Sushil1248/innfostride-backend/internal/http/handlers"
	"github.com/Sushil1248/innfostride-backend/internal/http/middleware"
	"github.com/Sushil1248/innfostride-backend/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	userH := handlers.NewUserHandlers(c.AuthSvc, c.OTPSvc, c.SidebarSvc, c.UserRepo)
	postH := handlers.NewPostHandlers(c.PostSvc, c.MediaSvc)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Enforcer, c.UserRepo, c.AccessRepo)

	r := httpx.BuildRouter(authH, userH, postH, polH, jwtMW, casbinMW)

	if policies := c.PolicySvc.GetPolicies(); len(policies) == 0 {
		if impl, ok := c.PolicySvc.(*services.PolicyServiceImpl); ok {
			if err := impl.SeedPolicies(); err != nil {
				return err
			}
			log.Println("casbin: seeded default policies")
		}
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
