package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/config"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/infra/stripe"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-backoffice/internal/usecase/appointment"
	ucPayment "github.com/BruksfildServices01/barbershop-backoffice/internal/usecase/payment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/validators"
)

// Infra carries the optional collaborators built by main. Nil fields turn the
// matching feature off.
type Infra struct {
	Audit    *audit.Dispatcher
	Dedup    ucPayment.EventDeduper
	Archive  ucPayment.EventArchiver
	Checkout ucPayment.CheckoutGateway
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	validators.Register()

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// REPOSITORIES
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	couponRepo := infraRepo.NewCouponGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db, cfg.OwnerOpenID)

	// ======================================================
	// USE CASES
	// ======================================================
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, infra.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, infra.Audit),
		ucAppointment.NewUpdateAppointment(appointmentRepo, updateStatusUC),
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewListAppointmentsByRange(appointmentRepo),
		ucAppointment.NewListAppointmentsByBarberDay(appointmentRepo, cfg.Timezone),
		cfg.Timezone,
	)

	reconcileOpts := []ucPayment.ReconcileOption{ucPayment.WithAudit(infra.Audit)}
	if infra.Dedup != nil {
		reconcileOpts = append(reconcileOpts, ucPayment.WithDeduper(infra.Dedup))
	}
	if infra.Archive != nil {
		reconcileOpts = append(reconcileOpts, ucPayment.WithArchiver(infra.Archive))
	}
	reconcileUC := ucPayment.NewReconcilePayment(
		paymentRepo,
		stripe.NewVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.Tolerance),
		reconcileOpts...,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	clientHandler := handlers.NewClientHandler(clientRepo, infra.Audit)
	barberHandler := handlers.NewBarberHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	paymentHandler := handlers.NewPaymentHandler(
		paymentRepo,
		ucPayment.NewStartCheckout(paymentRepo, infra.Checkout, infra.Audit),
		infra.Audit,
	)
	marketingHandler := handlers.NewMarketingHandler(db, couponRepo, infra.Audit)
	settingHandler := handlers.NewSettingHandler(db)
	meHandler := handlers.NewMeHandler(userRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	webhookHandler := handlers.NewWebhookHandler(reconcileUC)
	healthHandler := handlers.NewHealthHandler(db)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.POST("/webhooks/stripe", webhookHandler.Stripe)

	// ======================================================
	// API (JSON, authenticated)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg, userRepo))
	{
		api.GET("/me", meHandler.GetMe)

		// ------------------------------
		// CLIENTS
		// ------------------------------
		api.GET("/clients", clientHandler.List)
		api.GET("/clients/inactive", clientHandler.ListInactive)
		api.GET("/clients/:id", clientHandler.Get)
		api.POST("/clients", clientHandler.Create)
		api.PATCH("/clients/:id", clientHandler.Update)
		api.DELETE("/clients/:id", clientHandler.Delete)

		// ------------------------------
		// BARBERS
		// ------------------------------
		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.POST("/barbers", barberHandler.Create)
		api.PATCH("/barbers/:id", barberHandler.Update)
		api.DELETE("/barbers/:id", barberHandler.Delete)
		api.GET("/barbers/:id/schedules", barberHandler.GetSchedules)
		api.PUT("/barbers/:id/schedules", barberHandler.ReplaceSchedules)

		// ------------------------------
		// SERVICES
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.POST("/services", serviceHandler.Create)
		api.PATCH("/services/:id", serviceHandler.Update)
		api.DELETE("/services/:id", serviceHandler.Delete)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/by-barber", appointmentHandler.ListByBarber)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.POST("/appointments", appointmentHandler.Create)
		api.PATCH("/appointments/:id", appointmentHandler.Update)

		// ------------------------------
		// PAYMENTS
		// ------------------------------
		api.GET("/payments", paymentHandler.List)
		api.POST("/payments", paymentHandler.Create)
		api.POST("/payments/checkout", paymentHandler.StartCheckout)

		// ------------------------------
		// MARKETING
		// ------------------------------
		api.GET("/campaigns", marketingHandler.ListCampaigns)
		api.POST("/campaigns", marketingHandler.CreateCampaign)
		api.PATCH("/campaigns/:id", marketingHandler.UpdateCampaign)

		api.POST("/coupons", marketingHandler.CreateCoupon)
		api.GET("/coupons/:code", marketingHandler.GetCoupon)
		api.POST("/coupons/:code/redeem", marketingHandler.RedeemCoupon)

		api.GET("/whatsapp/messages", marketingHandler.ListWhatsappMessages)
		api.POST("/whatsapp/messages", marketingHandler.SendWhatsappMessage)

		api.GET("/message-templates", marketingHandler.ListTemplates)
		api.POST("/message-templates", marketingHandler.CreateTemplate)

		// ------------------------------
		// SETTINGS / AUDIT
		// ------------------------------
		api.GET("/settings/:key", settingHandler.Get)
		api.PUT("/settings/:key", settingHandler.Upsert)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
