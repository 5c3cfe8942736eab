package handler

import (
	"errors"
	"net/http"

	"miniecom/search-service/internal/app/search/entity"
	"miniecom/search-service/internal/app/search/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	statusCreated         = "created"
	submissionCreatedText = "New product added to the manual dataset."
	feedbackCreatedText   = "Price feedback recorded. It is applied to search results immediately."
)

type ManualHandler struct {
	manualService service.ManualServiceInterface
	validator     *validator.Validate
}

func NewManualHandler(manualService service.ManualServiceInterface) *ManualHandler {
	return &ManualHandler{
		manualService: manualService,
		validator:     validator.New(),
	}
}

// SubmitProduct - POST /api/products
func (h *ManualHandler) SubmitProduct(c *gin.Context) {
	var req entity.SubmitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	submission, err := h.manualService.SubmitProduct(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to save submission"})
		return
	}

	c.JSON(http.StatusCreated, entity.ManualResponse{
		OK:      true,
		Status:  statusCreated,
		Message: submissionCreatedText,
		SKU:     submission.SKU(),
		Entry:   submission,
	})
}

// SubmitPriceFeedback - POST /api/feedback
func (h *ManualHandler) SubmitPriceFeedback(c *gin.Context) {
	var req entity.PriceFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	correction, err := h.manualService.SubmitPriceFeedback(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to save price feedback"})
		return
	}

	c.JSON(http.StatusCreated, entity.ManualResponse{
		OK:      true,
		Status:  statusCreated,
		Message: feedbackCreatedText,
		SKU:     correction.SKU,
		Entry:   correction,
	})
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
