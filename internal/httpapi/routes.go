package httpapi

import (
	"centre-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Register mounts the /v1 API. authMW verifies access tokens; RBAC is applied
// per group here.
func Register(r gin.IRouter, h Handlers, authMW gin.HandlerFunc) {
	v1 := r.Group("/v1")

	// public
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}

	staff := v1.Group("")
	staff.Use(authMW, rbac.RequireStaff())
	{
		staff.GET("/me", h.Me)
		staff.GET("/me/signins", h.MySignins)

		live := staff.Group("/live")
		live.GET("/traffic", h.LiveTraffic)
		live.GET("/traffic/ws", h.LiveTrafficStream)
		live.GET("/sessions", h.LiveSessions)

		reports := staff.Group("/reports")
		reports.GET("/centres", h.CentreReport)
		reports.GET("/centres/export", h.ExportCentreReport)
		reports.GET("/centres/:centre_id/languages", h.LanguageReport)
		reports.GET("/centres/:centre_id/languages/export", h.ExportLanguageReport)
		reports.GET("/centres/:centre_id/languages/:language_id/agents", h.AgentReport)
		reports.GET("/agents/:operator_id/sessions", h.SessionReport)

		cs := staff.Group("/centres")
		cs.GET("", h.ListCentres)
		cs.POST("", h.CreateCentre)
		cs.GET("/:id", h.GetCentre)
		cs.PUT("/:id", h.UpdateCentre)
		cs.DELETE("/:id", h.DeleteCentre)

		ops := staff.Group("/operators")
		ops.GET("", h.ListOperators)
		ops.POST("", h.CreateOperator)
		ops.GET("/:id", h.GetOperator)
		ops.PUT("/:id", h.UpdateOperator)
		ops.DELETE("/:id", h.DeleteOperator)

		langs := staff.Group("/languages")
		langs.GET("", h.ListLanguages)
		langs.GET("/:id", h.GetLanguage)
		langs.POST("", rbac.RequireSuperuser(), h.CreateLanguage)
		langs.PUT("/:id", rbac.RequireSuperuser(), h.UpdateLanguage)
		langs.DELETE("/:id", rbac.RequireSuperuser(), h.DeleteLanguage)
	}

	// Superuser only.
	admin := v1.Group("")
	admin.Use(authMW, rbac.RequireSuperuser())
	{
		admins := admin.Group("/administrators")
		admins.GET("", h.ListAdministrators)
		admins.POST("", h.CreateAdministrator)
		admins.GET("/:id", h.GetAdministrator)
		admins.PUT("/:id", h.UpdateAdministrator)
		admins.DELETE("/:id", h.DeleteAdministrator)

		plans := admin.Group("/payplans")
		plans.GET("", h.ListPayPlans)
		plans.POST("", h.CreatePayPlan)
		plans.GET("/ladder", h.PayPlanLadder)
		plans.GET("/resolve", h.ResolvePayRate)
		plans.GET("/:id", h.GetPayPlan)
		plans.PUT("/:id", h.UpdatePayPlan)
		plans.DELETE("/:id", h.DeletePayPlan)
	}
}
