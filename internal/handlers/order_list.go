// internal/handlers/order_list.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenielthevis/foodever-backend/internal/services"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

type OrderListHandler struct {
	orderListService *services.OrderListService
}

func NewOrderListHandler(orderListService *services.OrderListService) *OrderListHandler {
	return &OrderListHandler{orderListService: orderListService}
}

// POST /order-list
func (h *OrderListHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddToOrderListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	entry, err := h.orderListService.Add(userID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"entry": entry})
}

// GET /order-list
func (h *OrderListHandler) GetEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.orderListService.ListForUser(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, view)
}

// PUT /order-list/:id
func (h *OrderListHandler) UpdateQuantity(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid entry ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	entry, err := h.orderListService.UpdateQuantity(entryID, userID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"entry": entry})
}

// DELETE /order-list/:id
func (h *OrderListHandler) DeleteEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid entry ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.orderListService.DeleteEntry(entryID, userID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Entry removed"})
}

// DELETE /order-list/products
func (h *OrderListHandler) DeleteByProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.orderListService.DeleteByProductIDs(userID, req.ProductIDs); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Entries removed"})
}
