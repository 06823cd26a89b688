package router

import (
	"net/http"
	"time"

	"attrition-go/internal/config"
	"attrition-go/internal/handlers"
	"attrition-go/internal/metrics"
	"attrition-go/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

const sessionName = "attrition_session"

// Services bundles what the HTTP layer depends on.
type Services struct {
	Surveys       *services.SurveyService
	Insights      *services.InsightsService
	Dashboard     *services.DashboardService
	Organizations *services.OrganizationSuggester
	Metrics       *metrics.Recorder
	Gatherer      prometheus.Gatherer
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

// newLimiter allows limit requests per client IP per minute.
func newLimiter(limit uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: limit,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})
}

func Setup(log *zap.Logger, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log, svc.Metrics))

	if origins := config.Conf.Server.AllowedOrigins; len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-CSRF-Token"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   config.Conf.Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions(sessionName, store))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "same-origin",
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	gatherer := svc.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Everything below carries a session, a CSRF token and the current user.
	app := router.Group("/")
	app.Use(CSRFProtection())
	app.Use(UserLoaderMiddleware(log))

	authHandler := handlers.NewAuthHandler(log)
	surveyHandler := handlers.NewSurveyHandler(log, svc.Surveys, svc.Organizations)
	insightsHandler := handlers.NewInsightsHandler(log, svc.Insights)
	dashboardHandler := handlers.NewDashboardHandler(log, svc.Dashboard)
	dataHandler := handlers.NewDataHandler(log)

	loginLimit := config.Conf.Server.LoginRateLimit
	if loginLimit == 0 {
		loginLimit = 5
	}
	submitLimit := config.Conf.Server.SubmitRateLimit
	if submitLimit == 0 {
		submitLimit = 10
	}

	app.GET("/session", authHandler.Session)
	app.POST("/login", newLimiter(loginLimit), authHandler.Login)
	app.POST("/logout", authHandler.Logout)

	surveyRoutes := app.Group("/survey")
	{
		surveyRoutes.GET("/form", surveyHandler.Form)
		surveyRoutes.GET("/organizations", surveyHandler.Organizations)
		surveyRoutes.POST("", newLimiter(submitLimit), surveyHandler.Submit)
	}
	app.POST("/score", surveyHandler.Score)

	authorized := app.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.GET("/dashboard", dashboardHandler.Show)
		authorized.GET("/insights", insightsHandler.Show)
		authorized.POST("/insights/recommendation", insightsHandler.Refresh)

		dataRoutes := authorized.Group("/data")
		{
			dataRoutes.GET("", dataHandler.List)
			dataRoutes.DELETE("/:id", dataHandler.Delete)
		}
	}

	return router
}
