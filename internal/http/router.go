package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Sushil1248/innfostride-backend/internal/http/handlers"
	"github.com/Sushil1248/innfostride-backend/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, ph *handlers.PostHandlers, polh *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/update-profile", jwtmw.WithJWT(), uh.UpdateProfile)

	user := r.Group("/user").Use(jwtmw.WithJWT())
	user.GET("/profile", uh.Profile)
	user.POST("/logout", uh.Logout)
	user.POST("/check-password", uh.CheckPassword)
	user.POST("/send-otp", uh.SendOTP)
	user.POST("/sidebar", uh.SaveSidebar)
	user.GET("/sidebar", uh.GetSidebar)

	api := r.Group("/api").Use(jwtmw.WithJWT(), cb.Enforce(), middleware.Tenant())
	api.POST("/posts", ph.Upsert)
	api.GET("/posts/:post_type", ph.List)
	api.GET("/post/:post_id", ph.Get)
	api.DELETE("/post/:post_id", ph.Delete)
	api.PATCH("/post/:post_id", ph.QuickEdit)
	api.GET("/post-types/:type", ph.Options)
	api.POST("/media", ph.UploadMedia)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", polh.List)
	adm.POST("/policies", polh.Add)
	adm.DELETE("/policies", polh.Remove)

	return r
}
