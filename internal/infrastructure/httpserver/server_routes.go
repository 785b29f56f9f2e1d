package httpserver

import (
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/permission"
)

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	// Owner auth, reached on the dashboard host or directly.
	authGroup := s.echo.Group("/auth")
	limited := authGroup.Group("", s.middleware.RateLimit.PerIP())
	limited.POST("/signup", s.signup)
	limited.POST("/login", s.login)
	limited.POST("/reset-password", s.requestPasswordReset)
	limited.POST("/update-password", s.updatePassword)
	authGroup.POST("/refresh", s.refreshToken)
	authGroup.POST("/logout", s.logout, s.middleware.JWT.RequireJWT(auth.RoleOwner))

	// Owner dashboard.
	app := s.echo.Group("/app", s.middleware.JWT.RequireJWT(auth.RoleOwner))
	app.GET("", s.dashboardHome)
	app.GET("/me", s.me)

	props := app.Group("/properties", s.middleware.Perm.RequirePermission(permission.ManageOwnProperties))
	props.GET("", s.listProperties)
	props.POST("", s.createProperty)
	props.GET("/:id", s.getProperty)
	props.PUT("/:id", s.updateProperty)
	props.DELETE("/:id", s.deleteProperty)
	props.POST("/:id/rooms", s.addRoom)
	props.POST("/:id/amenities", s.addAmenity)
	props.POST("/:id/testimonials", s.addTestimonial)
	props.POST("/:id/gallery", s.addGalleryImage)

	manage := s.middleware.Perm.RequirePermission(permission.ManageOwnProperties)
	app.PUT("/rooms/:id", s.updateRoom, manage)
	app.DELETE("/rooms/:id", s.deleteRoom, manage)
	app.PUT("/amenities/:id", s.updateAmenity, manage)
	app.DELETE("/amenities/:id", s.deleteAmenity, manage)
	app.PUT("/testimonials/:id", s.updateTestimonial, manage)
	app.DELETE("/testimonials/:id", s.deleteTestimonial, manage)
	app.DELETE("/gallery/:id", s.deleteGalleryImage, manage)

	bookings := s.middleware.Perm.RequirePermission(permission.ManageOwnBookings)
	app.GET("/properties/:id/bookings", s.listBookings, bookings)
	app.GET("/properties/:id/bookings/export", s.exportBookings, bookings)
	app.PATCH("/bookings/:id/status", s.updateBookingStatus, bookings)
	app.DELETE("/bookings/:id", s.deleteBooking, bookings)

	inquiries := s.middleware.Perm.RequirePermission(permission.ManageOwnInquiries)
	app.GET("/properties/:id/inquiries", s.listInquiries, inquiries)
	app.PATCH("/inquiries/:id/status", s.updateInquiryStatus, inquiries)
	app.DELETE("/inquiries/:id", s.deleteInquiry, inquiries)

	app.GET("/audit/logs", s.getOwnAuditLogs, s.middleware.Perm.RequirePermission(permission.ViewOwnAuditLog))

	// Public tenant sites; the host router rewrites tenant hosts here.
	sites := s.echo.Group("/sites/:host", s.middleware.Site.ResolveSite())
	sites.GET("", s.getSite)
	sites.GET("/availability", s.checkAvailability)
	sites.POST("/bookings", s.createBooking, s.middleware.RateLimit.Handler())
	sites.POST("/inquiries", s.submitInquiry, s.middleware.RateLimit.Handler())

	// Platform operators.
	sa := s.echo.Group("/api/superadmin")
	sa.POST("/login", s.superadminLogin, s.middleware.RateLimit.PerIP())
	sa.GET("/verify", s.superadminVerify)

	op := sa.Group("", s.middleware.JWT.RequireJWT(auth.RoleSuperadmin))
	op.POST("/logout", s.logout)
	op.GET("/dashboard", s.superadminDashboard, s.middleware.Perm.RequireAnyPermission(permission.ReadAllTenants, permission.RecordPayments))
	op.GET("/tenants", s.listTenants, s.middleware.Perm.RequirePermission(permission.ReadAllTenants))
	op.GET("/tenants/:id", s.getTenantDetail, s.middleware.Perm.RequirePermission(permission.ReadAllTenants))
	op.POST("/tenant/update-status", s.updateTenantStatus, s.middleware.Perm.RequirePermission(permission.ManageTenantStatus))
	op.POST("/payment/record", s.recordPayment, s.middleware.Perm.RequirePermission(permission.RecordPayments))
	op.GET("/plans", s.listPlans, s.middleware.Perm.RequirePermission(permission.ReadPlans))
	op.GET("/audit/logs", s.getAuditLogs, s.middleware.Perm.RequirePermission(permission.ViewAuditLog))
}
