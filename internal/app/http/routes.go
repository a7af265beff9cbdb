package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authapi "github.com/manmeet1049/bizzler/internal/api/auth"
	billingapi "github.com/manmeet1049/bizzler/internal/api/billing"
	businessapi "github.com/manmeet1049/bizzler/internal/api/businesses"
	plansapi "github.com/manmeet1049/bizzler/internal/api/plans"
	subscribersapi "github.com/manmeet1049/bizzler/internal/api/subscribers"
	subscriptionsapi "github.com/manmeet1049/bizzler/internal/api/subscriptions"
	usersapi "github.com/manmeet1049/bizzler/internal/api/users"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, params service.ServiceParams, gatherer prometheus.Gatherer) {
	authService := service.NewAuthService(params)
	businessService := service.NewBusinessService(params)

	auth := authapi.NewHandler(authService)
	users := usersapi.NewHandler(authService)
	businesses := businessapi.NewHandler(businessService)
	plans := plansapi.NewHandler(service.NewPlanService(params), params.Logger)
	subscribers := subscribersapi.NewHandler(service.NewSubscriberService(params))
	subscriptions := subscriptionsapi.NewHandler(service.NewSubscriptionService(params))
	billing := billingapi.NewHandler(service.NewBillingService(params))

	r.Use(middleware.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", auth.Register)
	public.POST("/login", auth.Login)
	public.POST("/token/refresh", auth.Refresh)

	// Authenticated
	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(params.Config.JWTSecret), middleware.SanitizeAndCleanInputMiddleware())
	authed.GET("/me", users.GetCurrentUser)
	authed.POST("/businesses", businesses.CreateBusiness)
	authed.GET("/businesses", businesses.ListBusinesses)

	// Members of a subscription business, selected with X-Business-ID
	tenant := authed.Group("/")
	tenant.Use(
		middleware.TenantMiddleware(businessService),
		middleware.RequireCapability(access.CapMember, access.CapSubscriptionBusiness),
	)
	tenant.GET("/plans", plans.ListPlans)
	tenant.GET("/plans/:id", plans.GetPlan)
	tenant.POST("/subscribers", subscribers.CreateSubscriber)
	tenant.GET("/subscribers/:id", subscribers.GetSubscriber)
	tenant.GET("/subscribers/:id/subscriptions", subscribers.ListSubscriptions)
	tenant.POST("/subscriptions", subscriptions.Subscribe)
	tenant.GET("/subscriptions/:id/transaction", billing.GetSubscriptionTransaction)
	tenant.GET("/transactions", billing.ListTransactions)

	// Owner only
	owner := tenant.Group("/")
	owner.Use(middleware.RequireCapability(access.CapOwner))
	owner.POST("/plans", plans.AddPlan)
	owner.DELETE("/plans/:id", plans.DeletePlan)
	owner.POST("/plans/import-stripe", plans.ImportFromStripe)
	owner.POST("/staff", businesses.AddStaff)
}
