package server

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pulse-metrics/domain/repository"
	httpHandler "pulse-metrics/interfaces/http"
	"pulse-metrics/interfaces/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Billing      httpHandler.IBillingHandler
	Analytics    httpHandler.IAnalyticsHandler
	Trending     httpHandler.ITrendingHandler
	Competitors  httpHandler.ICompetitorHandler
	Subscription httpHandler.ISubscriptionHandler
	TikTokAuth   httpHandler.ITikTokAuthHandler
	Export       httpHandler.IExportHandler
}

func InitiateRouter(h Handlers, userRepository repository.IUser) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		if allowed := allowedMethods(router.Routes(), ctx.Request.URL.Path); len(allowed) > 0 {
			ctx.Header("Allow", strings.Join(allowed, ", "))
		}
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Billing provider surface stays public: checkout happens pre-login on
	// the pricing page and the webhook is called by the provider directly.
	stripeGroup := router.Group("/api/stripe")
	{
		stripeGroup.POST("/create-checkout-session", h.Billing.CreateCheckoutSession)
		stripeGroup.POST("/create-portal-session", h.Billing.CreatePortalSession)
		stripeGroup.GET("/subscription-status", h.Billing.SubscriptionStatus)
		stripeGroup.POST("/webhook", h.Billing.Webhook)
	}
	router.GET("/api/pricing", h.Billing.Pricing)

	if h.TikTokAuth != nil {
		router.GET("/auth/tiktok", h.TikTokAuth.GetAuthURL)
		router.GET("/auth/tiktok/callback", h.TikTokAuth.HandleCallback)
	}

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	analytics := api.Group("/analytics")
	{
		analytics.GET("/profile", h.Analytics.GetProfile)
		analytics.GET("/videos", h.Analytics.GetVideos)
		analytics.GET("/insights", h.Analytics.GetInsights)
		analytics.GET("/best-times", h.Analytics.GetBestTimes)
		analytics.GET("/trends", h.Analytics.GetTrends)
		analytics.GET("/hashtags", h.Analytics.GetHashtags)
		analytics.GET("/growth", h.Analytics.GetGrowth)
		analytics.GET("/history", h.Analytics.GetHistory)
	}

	trending := api.Group("/trending")
	{
		trending.GET("/sounds", h.Trending.GetSounds)
		trending.GET("/hashtags", h.Trending.GetHashtags)
		trending.GET("/videos", h.Trending.GetVideos)
	}
	api.GET("/search/users", h.Trending.SearchUsers)
	api.GET("/search/videos", h.Trending.SearchVideos)

	competitors := api.Group("/competitors")
	{
		competitors.GET("", h.Competitors.List)
		competitors.POST("", h.Competitors.Add)
		competitors.DELETE("/:username", h.Competitors.Remove)
		competitors.GET("/data", h.Competitors.GetData)
		competitors.GET("/compare", h.Competitors.Compare)
	}

	subscription := api.Group("/subscription")
	{
		subscription.GET("", h.Subscription.Current)
		subscription.POST("/upgrade", h.Subscription.Upgrade)
		subscription.POST("/cancel", h.Subscription.Cancel)
	}

	if h.Export != nil {
		api.GET("/export/videos", h.Export.ExportVideos)
		api.GET("/export/history", h.Export.ExportHistory)
	}

	if h.TikTokAuth != nil {
		api.GET("/tiktok/oauth/status", h.TikTokAuth.Status)
		api.DELETE("/tiktok/oauth", h.TikTokAuth.Disconnect)
	}

	return router
}

// allowedMethods lists the methods registered for a request path, for the
// Allow header on 405 responses
func allowedMethods(routes gin.RoutesInfo, path string) []string {
	seen := map[string]bool{}
	for _, route := range routes {
		if pathMatches(route.Path, path) && !seen[route.Method] {
			seen[route.Method] = true
		}
	}
	out := make([]string, 0, len(seen))
	for method := range seen {
		out = append(out, method)
	}
	sort.Strings(out)
	return out
}

func pathMatches(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	rs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(rs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") || strings.HasPrefix(ps[i], "*") {
			continue
		}
		if ps[i] != rs[i] {
			return false
		}
	}
	return true
}
