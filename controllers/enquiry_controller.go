package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpath/admissions_backend/models"
	"github.com/schoolpath/admissions_backend/repositories"
	"github.com/schoolpath/admissions_backend/services"
)

// EnquiryController handles enquiry creation and stage progression
type EnquiryController struct {
	enquiries *repositories.EnquiryRepository
	stages    *services.StageService
}

// NewEnquiryController creates a new enquiry controller
func NewEnquiryController(db *mongo.Database) *EnquiryController {
	enquiries := repositories.NewEnquiryRepository(db)
	return &EnquiryController{
		enquiries: enquiries,
		stages:    services.NewStageService(enquiries),
	}
}

// CreateEnquiry registers a new enquiry and seeds its stage list from the
// enquiry type's templates
func (ec *EnquiryController) CreateEnquiry(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateEnquiryRequest
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

	if services.TemplatesFor(req.EnquiryType) == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown enquiry type",
		})
	}

	enquiry := &models.Enquiry{
		EnquiryNo:      req.EnquiryNo,
		EnquiryType:    req.EnquiryType,
		Status:         models.EnquiryStatusOpen,
		StudentName:    req.StudentName,
		SchoolID:       req.SchoolID,
		GradeID:        req.GradeID,
		BoardID:        req.BoardID,
		CourseID:       req.CourseID,
		ShiftID:        req.ShiftID,
		StreamID:       req.StreamID,
		BrandID:        req.BrandID,
		HostSchoolID:   req.HostSchoolID,
		AcademicYearID: req.AcademicYearID,
		EnquiryStages:  services.MapEnquiryTypeStages(req.EnquiryType, req.Stages),
		OtherDetails:   req.OtherDetails,
	}

	id, err := ec.enquiries.Create(ctx, enquiry)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create enquiry",
		})
	}
	enquiry.ID = id

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Enquiry created successfully",
		Data:    enquiry,
	})
}

// GetEnquiry retrieves one enquiry with its stage list
func (ec *EnquiryController) GetEnquiry(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	enquiry, err := ec.enquiries.GetByID(ctx, enquiryID)
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

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Enquiry retrieved successfully",
		Data:    enquiry,
	})
}

// GetStageTemplates returns the stage templates of an enquiry type
func (ec *EnquiryController) GetStageTemplates(c echo.Context) error {
	enquiryType := c.QueryParam("enquiryType")
	templates := services.TemplatesFor(enquiryType)
	if templates == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Unknown enquiry type",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Stage templates retrieved successfully",
		Data:    templates,
	})
}

// AdvanceStage updates the status of every stage matching the submitted
// name pattern
func (ec *EnquiryController) AdvanceStage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	var req models.AdvanceStageRequest
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

	matched, err := ec.stages.AdvanceStage(ctx, enquiryID, req.StageName, req.Status)
	if err != nil {
		return respondServiceError(c, err, "Failed to advance stage")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Stage updated successfully",
		Data:    map[string]interface{}{"stagesUpdated": matched},
	})
}

// ReplaceStages bulk-overwrites the enquiry's stage array
func (ec *EnquiryController) ReplaceStages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid enquiry ID format",
		})
	}

	var req models.ReplaceStagesRequest
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

	stages, err := ec.stages.ReplaceStages(ctx, enquiryID, req.Stages)
	if err != nil {
		return respondServiceError(c, err, "Failed to replace stages")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Stages replaced successfully",
		Data:    stages,
	})
}

// respondServiceError maps service errors onto HTTP responses; anything
// unrecognized is treated as an upstream/storage failure
func respondServiceError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrEnquiryNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Enquiry not found",
		})
	case errors.Is(err, services.ErrAdmissionNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Admission record not found",
		})
	case errors.Is(err, services.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: fallback,
	})
}
