package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"
	"laundry-admin/internal/metrics"
	"laundry-admin/internal/repositories"
	"laundry-admin/internal/utils"

	"github.com/google/uuid"
)

type OrderService struct {
	OrderRepo   repositories.OrderRepository
	ProductRepo repositories.ProductRepository
	DB          *sql.DB
	RequestID   string
}

func (s OrderService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s OrderService) orders() repositories.OrderRepository {
	if s.OrderRepo.DB != nil {
		return s.OrderRepo
	}
	return repositories.OrderRepository{DB: s.db()}
}

func (s OrderService) products() repositories.ProductRepository {
	if s.ProductRepo.DB != nil {
		return s.ProductRepo
	}
	return repositories.ProductRepository{DB: s.db()}
}

type CreateOrderInput struct {
	CustomerName string            `json:"customerName"`
	Phone        string            `json:"phone"`
	Note         string            `json:"note"`
	Items        []CreateOrderItem `json:"orderItems"`
}

type CreateOrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// CreateOrder validates the draft, reprices every line from the catalog
// and stores the order as pending.
func (s OrderService) CreateOrder(in CreateOrderInput) (models.Order, error) {
	var out models.Order

	name := utils.NormalizeSpace(in.CustomerName)
	if name == "" {
		return out, domain.ValidationError{Field: "customerName", Msg: "Vui lòng nhập tên khách hàng"}
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return out, domain.ValidationError{Field: "phone", Msg: "Vui lòng nhập số điện thoại"}
	}
	if len(in.Items) == 0 {
		return out, domain.ValidationError{Field: "orderItems", Msg: "Vui lòng chọn ít nhất một sản phẩm"}
	}

	// Prices come from the catalog, never from the request body.
	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return out, domain.ValidationError{Field: "quantity", Msg: "Số lượng không hợp lệ"}
		}
		p, err := s.products().GetByProductID(strings.TrimSpace(it.ProductID))
		if err != nil {
			return out, err
		}
		items = append(items, models.OrderItem{
			ProductID:   p.ProductID,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    it.Quantity,
		})
		total += p.Price * it.Quantity
	}

	out = models.Order{
		OrderID:      newOrderCode(),
		CustomerName: name,
		Phone:        phone,
		Note:         strings.TrimSpace(in.Note),
		Total:        total,
		Status:       string(domain.StatusPending),
		Items:        items,
	}

	id, err := s.orders().Insert(out)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	out.ID = id

	metrics.OrdersCreated.Inc()
	utils.LogEvent(s.RequestID, "order", "create", fmt.Sprintf("id=%d code=%s total=%.0f", id, out.OrderID, total))
	return s.orders().GetByID(id)
}

// UpdateStatus moves an order along the status machine. Completed and
// cancelled are terminal.
func (s OrderService) UpdateStatus(id int64, next string) (models.Order, error) {
	var out models.Order

	to := domain.OrderStatus(strings.TrimSpace(next))
	if !to.Valid() {
		return out, domain.ValidationError{Field: "status", Msg: "Trạng thái không hợp lệ"}
	}

	current, err := s.orders().GetStatus(id)
	if err != nil {
		return out, err
	}
	if !domain.OrderStatus(current).CanTransition(to) {
		return out, domain.ConflictError{
			Msg: fmt.Sprintf("Không thể chuyển đơn hàng từ %s sang %s", current, to),
		}
	}

	if err := s.orders().UpdateStatus(id, string(to)); err != nil {
		return out, err
	}
	metrics.OrderStatusChanges.WithLabelValues(string(to)).Inc()
	utils.LogEvent(s.RequestID, "order", "update_status", fmt.Sprintf("id=%d %s->%s", id, current, to))
	return s.orders().GetByID(id)
}

func newOrderCode() string {
	return "ORD-" + strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
