package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/schoolpath/admissions_backend/controllers"
	"github.com/schoolpath/admissions_backend/middleware"
)

// RegisterEnquiryRoutes sets up the protected enquiry and stage routes
func RegisterEnquiryRoutes(e *echo.Echo, enquiryController *controllers.EnquiryController) {
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.POST("/enquiries", enquiryController.CreateEnquiry)
	r.GET("/enquiries/:id", enquiryController.GetEnquiry)
	r.GET("/stage-templates", enquiryController.GetStageTemplates)

	// Stage progression
	r.POST("/enquiries/:id/stages/advance", enquiryController.AdvanceStage)
	r.PUT("/enquiries/:id/stages", enquiryController.ReplaceStages)
}
