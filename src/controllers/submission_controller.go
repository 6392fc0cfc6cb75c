package controllers

import (
	"context"
	"net/http"
	"time"

	"Backend-Worklink-007/src/models"
	"Backend-Worklink-007/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type listSubmissionsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=PENDING SUBMITTED FAILED RETRYING"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	SortBy string `query:"sortBy" validate:"omitempty,oneof=createdAt updatedAt status retryCount nextRetryAt"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
}

// GetSubmissions godoc
// @Summary      List submissions (operator view)
// @Description  Paged delivery-state listing. Filtering status=FAILED surfaces rows with an exhausted retry budget.
// @Tags         submissions
// @Produce      json
// @Param        status  query  string  false  "Status filter"  Enums(PENDING, SUBMITTED, FAILED, RETRYING)
// @Param        page    query  int     false  "Page"           default(1)
// @Param        limit   query  int     false  "Page size"      default(10)
// @Success      200  {object}  models.PaginatedResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /submissions [get]
func GetSubmissions(c *fiber.Ctx) error {
	var query listSubmissionsQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "invalid query parameters")
	}
	if err := validate.Struct(&query); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "invalid query parameters")
	}

	params := models.DefaultPagination()
	if query.Page > 0 {
		params.Page = query.Page
	}
	if query.Limit > 0 {
		params.Limit = query.Limit
	}
	if query.SortBy != "" {
		params.SortBy = query.SortBy
	}
	if query.Order != "" {
		params.Order = query.Order
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := submissionService.ListSubmissions(ctx, query.Status, params)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(result)
}
