package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"schoolpay/internal/models/request_models"
	"schoolpay/internal/services"
	"schoolpay/pkg/utils"
)

type WebhookController struct {
	updateService services.StatusUpdateServiceInterface
}

func NewWebhookController(updateService services.StatusUpdateServiceInterface) *WebhookController {
	return &WebhookController{updateService: updateService}
}

// TransactionStatus godoc
// @Summary Payment gateway status callback
// @Description Status 200 marks the transaction Success, any other number marks it Failed. order_info.order_id is matched against collect_id.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param request body request_models.WebhookRequest true "Gateway callback"
// @Success 200 {object} utils.APIResponse{data=db_models.Transaction}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /webhook/transaction-status [post]
func (wc *WebhookController) TransactionStatus(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.HandleServiceError(c, utils.NewValidationError("Unable to read request body."))
		return
	}

	var req request_models.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		verr := utils.NewValidationError("Invalid request payload.")
		wc.updateService.RecordRejectedWebhook(c.Request.Context(), body, verr)
		utils.HandleServiceError(c, verr)
		return
	}
	req.Raw = body

	txn, err := wc.updateService.WebhookUpdate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, txn, "Transaction updated successfully.")
}
