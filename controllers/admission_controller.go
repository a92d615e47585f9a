package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpath/admissions_backend/middleware"
	"github.com/schoolpath/admissions_backend/models"
	"github.com/schoolpath/admissions_backend/repositories"
	"github.com/schoolpath/admissions_backend/services"
	"github.com/schoolpath/admissions_backend/utils"
)

// AdmissionController handles VAS selection, the one-shot fee request and
// the admission decision
type AdmissionController struct {
	enquiries  *repositories.EnquiryRepository
	admissions *repositories.AdmissionRepository
	vas        *services.VasService
	feeRequest *services.FeeRequestService
	approval   *services.ApprovalService
}

// NewAdmissionController creates a new admission controller
func NewAdmissionController(db *mongo.Database, redisClient *redis.Client) *AdmissionController {
	enquiries := repositories.NewEnquiryRepository(db)
	admissions := repositories.NewAdmissionRepository(db)
	enquiryLogs := repositories.NewEnquiryLogRepository(db)
	auditLogs := repositories.NewAuditLogRepository(db)
	stages := services.NewStageService(enquiries)
	audit := services.NewAuditService(auditLogs)

	return &AdmissionController{
		enquiries:  enquiries,
		admissions: admissions,
		vas:        services.NewVasService(admissions, enquiryLogs),
		feeRequest: services.NewFeeRequestService(
			enquiries,
			admissions,
			enquiryLogs,
			audit,
			services.NewFinanceService(),
			services.NewTransportService(),
			services.NewMDMService(),
			stages,
			utils.NewLockManager(redisClient),
		),
		approval: services.NewApprovalService(enquiries, admissions, enquiryLogs, stages),
	}
}

// AddVasOption attaches a value-added service to the enquiry
func (ac *AdmissionController) AddVasOption(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	var req models.AddVasRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	createdBy, createdByID := actorFromToken(c)
	if err := ac.vas.AddVasOption(ctx, enquiryID, req.VasType, req.Details, createdBy, createdByID); err != nil {
		return respondServiceError(c, err, "Failed to add VAS option")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "VAS option added successfully",
	})
}

// RemoveVasOption detaches a value-added service from the enquiry
func (ac *AdmissionController) RemoveVasOption(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	if err := ac.vas.RemoveVasOption(ctx, enquiryID, c.Param("vasType")); err != nil {
		return respondServiceError(c, err, "Failed to remove VAS option")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "VAS option removed successfully",
	})
}

// GetAdmissionDetails returns the enquiry's admission record with the
// opted booleans derived from detail presence
func (ac *AdmissionController) GetAdmissionDetails(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	record, err := ac.admissions.GetByEnquiryID(ctx, enquiryID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Admission record not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve admission record",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Admission details retrieved successfully",
		Data:    record.ToDetailsView(),
	})
}

// SendPaymentRequest triggers the one-shot consolidated fee request
func (ac *AdmissionController) SendPaymentRequest(c echo.Context) error {
	// The pipeline spans several external calls; give it more room than a
	// plain read endpoint
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	enquiry, err := ac.enquiries.GetByID(ctx, enquiryID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Enquiry not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve enquiry",
		})
	}

	createdBy, createdByID := actorFromToken(c)
	authorization := c.Request().Header.Get("Authorization")

	if err := ac.feeRequest.SendCreateAdmissionPaymentRequest(ctx, enquiry, authorization, createdBy, createdByID); err != nil {
		return respondServiceError(c, err, "Failed to send admission fee request")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Admission fee request sent successfully",
	})
}

// UpdateApprovalStatus records the admission decision
func (ac *AdmissionController) UpdateApprovalStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	var req models.UpdateApprovalStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	createdBy, createdByID := actorFromToken(c)
	if err := ac.approval.UpdateAdmissionApprovalStatus(ctx, enquiryID, req.Status, createdBy, createdByID); err != nil {
		return respondServiceError(c, err, "Failed to update approval status")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Admission approval status updated successfully",
	})
}

// actorFromToken reads the acting staff member's identity off the JWT
func actorFromToken(c echo.Context) (createdBy, createdByID string) {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return "", ""
	}
	name := claims.FullName
	if name == "" {
		name = claims.Email
	}
	return name, claims.UserID
}
