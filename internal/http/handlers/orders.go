package handlers

import (
	"fmt"
	"net/http"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain"
	"laundry-admin/internal/http/middleware"
	"laundry-admin/internal/repositories"
	"laundry-admin/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/order
func ListOrders(c *gin.Context) {
	p := listParamsFromQuery(c)
	if p.Status != "" && !domain.OrderStatus(p.Status).Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "Trạng thái không hợp lệ"})
		return
	}

	repo := repositories.OrderRepository{}
	list, total, err := repo.List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total})
}

// GET /api/order/:id
func GetOrder(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	repo := repositories.OrderRepository{}
	o, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// POST /api/order
func CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.OrderService{RequestID: middleware.GetRequestID(c)}
	o, err := svc.CreateOrder(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/order/:id/status
func UpdateOrderStatus(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.OrderService{RequestID: middleware.GetRequestID(c)}
	o, err := svc.UpdateStatus(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /api/order/:id/receipt streams the printable PDF.
func OrderReceipt(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	env := intconfig.LoadEnv()
	svc := services.ReceiptService{
		RequestID:  middleware.GetRequestID(c),
		StoreName:  env.StoreName,
		StorePhone: env.StorePhone,
	}
	pdfBytes, filename, err := svc.Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename=%q`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
