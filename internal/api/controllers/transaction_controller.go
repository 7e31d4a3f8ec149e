package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"schoolpay/internal/models/request_models"
	"schoolpay/internal/query"
	"schoolpay/internal/services"
	"schoolpay/pkg/utils"
)

type TransactionController struct {
	queryService  services.TransactionQueryServiceInterface
	updateService services.StatusUpdateServiceInterface
}

func NewTransactionController(
	queryService services.TransactionQueryServiceInterface,
	updateService services.StatusUpdateServiceInterface,
) *TransactionController {
	return &TransactionController{
		queryService:  queryService,
		updateService: updateService,
	}
}

// ListTransactions godoc
// @Summary List transactions
// @Description Paginated transactions joined with student contact details. Transactions without a known student are omitted.
// @Tags Transactions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param status query string false "Pending, Success or Failed"
// @Param searchTerm query string false "Case-insensitive match on collect_id or custom_order_id"
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param sortBy query string false "transaction_date, order_amount or transaction_amount"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} utils.ListResponse{data=[]response_models.TransactionView}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /transactions [get]
func (tc *TransactionController) ListTransactions(c *gin.Context) {
	var req request_models.ListTransactionsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.HandleServiceError(c, utils.NewValidationError("Invalid query parameters."))
		return
	}

	d, err := query.Build(req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := tc.queryService.ListTransactions(c.Request.Context(), d)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	msg := "Transactions fetched successfully."
	if len(page.Records) == 0 {
		msg = "No transactions found matching your criteria."
	}
	utils.RespondList(c, page.Records, msg, page.Page, page.TotalPages(), page.TotalCount)
}

// ListBySchool godoc
// @Summary List transactions of a school
// @Tags Transactions
// @Produce json
// @Param school_id path string true "School ID (SCH followed by at least 3 digits)"
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} utils.APIResponse{data=[]response_models.TransactionView}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /transactions/school/{school_id} [get]
func (tc *TransactionController) ListBySchool(c *gin.Context) {
	var req request_models.SchoolTransactionsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.HandleServiceError(c, utils.NewValidationError("Invalid query parameters."))
		return
	}

	schoolID := c.Param("school_id")
	records, err := tc.queryService.ListBySchool(c.Request.Context(), schoolID, req.StartDate, req.EndDate)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	msg := "Transactions fetched successfully."
	if len(records) == 0 {
		msg = "No transactions found for the given School ID."
	}
	utils.RespondSuccess(c, records, msg)
}

// CheckStatus godoc
// @Summary Check transaction status
// @Tags Transactions
// @Produce json
// @Param custom_order_id path string true "Custom order ID (ORD followed by at least 4 digits)"
// @Success 200 {object} utils.APIResponse{data=response_models.StatusResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /transactions/check-status/{custom_order_id} [get]
func (tc *TransactionController) CheckStatus(c *gin.Context) {
	orderID := c.Param("custom_order_id")

	status, err := tc.queryService.GetStatusByOrderID(c.Request.Context(), orderID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status,
		fmt.Sprintf("Transaction status fetched successfully for order ID '%s'.", status.CustomOrderID))
}

// GetByCollectID godoc
// @Summary Get a transaction by collect ID
// @Tags Transactions
// @Produce json
// @Param collect_id path string true "Collect ID"
// @Success 200 {object} utils.APIResponse{data=db_models.Transaction}
// @Failure 404 {object} utils.APIResponse
// @Router /transactions/collect/{collect_id} [get]
func (tc *TransactionController) GetByCollectID(c *gin.Context) {
	txn, err := tc.queryService.GetByCollectID(c.Request.Context(), c.Param("collect_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, txn, "Transaction fetched successfully.")
}

// ManualUpdate godoc
// @Summary Manually set a transaction status
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body request_models.ManualUpdateRequest true "Order and new status"
// @Success 200 {object} utils.APIResponse{data=db_models.Transaction}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /transactions/manual-update [post]
func (tc *TransactionController) ManualUpdate(c *gin.Context) {
	var req request_models.ManualUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.NewValidationError("Invalid request payload."))
		return
	}

	txn, err := tc.updateService.ManualUpdate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, txn, "Transaction status updated successfully.")
}
