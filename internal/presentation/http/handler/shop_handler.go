package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopbill-api/internal/application/service"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/response"
)

// ShopHandler handles shop profile HTTP requests
type ShopHandler struct {
	shopService *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// Create handles creating a shop
func (h *ShopHandler) Create(c *gin.Context) {
	var req request.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), &service.CreateShopInput{
		ShopName:      req.ShopName,
		OwnerName:     req.OwnerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		GSTNumber:     req.GSTNumber,
		GSTRate:       req.GSTRate,
		InvoicePrefix: req.InvoicePrefix,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shop created successfully", shop)
}

// List handles listing shops
func (h *ShopHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"

	shops, err := h.shopService.ListShops(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shops retrieved successfully", shops)
}

// Mine handles getting the shop this installation bills for
func (h *ShopHandler) Mine(c *gin.Context) {
	shop, err := h.shopService.GetMyShop(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop retrieved successfully", shop)
}

// Get handles getting a single shop
func (h *ShopHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "shop")
	if !ok {
		return
	}

	shop, err := h.shopService.GetShop(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop retrieved successfully", shop)
}

// Update handles updating a shop
func (h *ShopHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "shop")
	if !ok {
		return
	}

	var req request.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), &service.UpdateShopInput{
		ShopID:        id,
		ShopName:      req.ShopName,
		OwnerName:     req.OwnerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		GSTNumber:     req.GSTNumber,
		GSTRate:       req.GSTRate,
		InvoicePrefix: req.InvoicePrefix,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop updated successfully", shop)
}

// Delete handles deactivating a shop
func (h *ShopHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "shop")
	if !ok {
		return
	}

	if err := h.shopService.DeleteShop(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop deleted successfully", nil)
}
