package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/schoolpath/admissions_backend/controllers"
	"github.com/schoolpath/admissions_backend/middleware"
)

// RegisterAdmissionRoutes sets up the protected VAS, fee-request and
// approval routes
func RegisterAdmissionRoutes(e *echo.Echo, admissionController *controllers.AdmissionController) {
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	// VAS selection
	r.POST("/enquiries/:id/vas", admissionController.AddVasOption)
	r.DELETE("/enquiries/:id/vas/:vasType", admissionController.RemoveVasOption)

	// Admission record
	r.GET("/enquiries/:id/admission", admissionController.GetAdmissionDetails)
	r.PUT("/enquiries/:id/admission/approval", admissionController.UpdateApprovalStatus)

	// One-shot consolidated fee request
	r.POST("/enquiries/:id/payment-request", admissionController.SendPaymentRequest)
}
