package handler

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopbill-api/internal/application/service"
	"github.com/sangkips/shopbill-api/internal/domain/enum"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sangkips/shopbill-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// maxPDFSize caps uploaded bill documents
const maxPDFSize = 10 << 20

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create handles creating a bill
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.CreateBillInput{
		ShopID:        req.ShopID,
		Items:         billItems(req.Items),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		PaymentStatus: enum.PaymentStatus(req.PaymentStatus),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Subtotal:      req.Subtotal,
		TaxAmount:     req.TaxAmount,
		TotalAmount:   req.TotalAmount,
	}
	if req.DiscountAmount != nil {
		input.DiscountAmount = *req.DiscountAmount
	} else {
		input.DiscountAmount = decimal.Zero
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// List handles listing bills
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	from, to := dayRange(filter.StartDate, filter.EndDate)
	result, err := h.billService.ListBills(c.Request.Context(), &repository.BillFilterParams{
		Pagination:    pageParams(c),
		ShopID:        utils.OptionalUUID(filter.ShopID),
		PaymentStatus: enum.PaymentStatus(filter.PaymentStatus),
		PaymentMethod: enum.PaymentMethod(filter.PaymentMethod),
		Search:        filter.Search,
		From:          from,
		To:            to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles getting a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "bill")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// GetByNumber handles getting an active bill by its number
func (h *BillHandler) GetByNumber(c *gin.Context) {
	bill, err := h.billService.GetBillByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// ListByShop handles listing the bills of one shop
func (h *BillHandler) ListByShop(c *gin.Context) {
	shopID, ok := pathID(c, "id", "shop")
	if !ok {
		return
	}

	result, err := h.billService.ListShopBills(c.Request.Context(), shopID, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Update handles updating a bill
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "bill")
	if !ok {
		return
	}

	var req request.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.UpdateBillInput{
		BillID:         id,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Notes:          req.Notes,
		DiscountAmount: req.DiscountAmount,
	}
	if req.Items != nil {
		input.Items = billItems(req.Items)
	}
	if req.PaymentMethod != nil {
		method := enum.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}
	if req.PaymentStatus != nil {
		status := enum.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &status
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// Delete handles deactivating a bill and restoring its stock
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "bill")
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", nil)
}

// UploadPDF handles attaching a PDF to a bill. The document is accepted as
// a multipart "file" field or as base64 in a JSON body.
func (h *BillHandler) UploadPDF(c *gin.Context) {
	id, ok := pathID(c, "id", "bill")
	if !ok {
		return
	}

	content, err := readPDF(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bill, err := h.billService.AttachPDF(c.Request.Context(), id, content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PDF uploaded successfully", gin.H{"pdf_url": bill.PDFURL})
}

func readPDF(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, apperror.NewBadRequestError("PDF file is required")
		}
		if header.Size > maxPDFSize {
			return nil, apperror.NewBadRequestError("PDF file is too large")
		}
		file, err := header.Open()
		if err != nil {
			return nil, apperror.NewBadRequestError("Unable to read PDF file")
		}
		defer file.Close()
		content, err := io.ReadAll(io.LimitReader(file, maxPDFSize))
		if err != nil {
			return nil, apperror.NewBadRequestError("Unable to read PDF file")
		}
		return content, nil
	}

	var req request.BillPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperror.NewBadRequestError("pdf_content must be base64 encoded")
	}
	content, err := base64.StdEncoding.DecodeString(req.PDFContent)
	if err != nil {
		return nil, apperror.NewBadRequestError("pdf_content must be base64 encoded")
	}
	if len(content) > maxPDFSize {
		return nil, apperror.NewBadRequestError("PDF file is too large")
	}
	return content, nil
}

func billItems(items []request.BillItemRequest) []service.BillItemInput {
	inputs := make([]service.BillItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.BillItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return inputs
}
