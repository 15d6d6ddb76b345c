package services

import (
	"strings"
	"testing"

	"laundry-admin/internal/domain"
	"laundry-admin/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateOrderRepricesFromCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	productCols := []string{
		"id", "product_id", "name", "price", "category", "image",
		"description", "status", "pinned", "created_at", "updated_at",
	}
	mock.ExpectQuery("FROM products WHERE product_id = \\?").
		WithArgs("GK01").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, "GK01", "Giặt khô", 50000.0, "Giặt", "", "", "active", false, "2025-01-01 08:00:00", "2025-01-01 08:00:00"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), "Nguyễn Văn A", "0901234567", nil, 100000.0, "pending").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(9), "GK01", "Giặt khô", 50000.0, 2.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	orderCols := []string{
		"id", "order_id", "customer_name", "phone", "note", "total", "status",
		"completed_date", "cancelled_date", "created_at", "updated_at",
	}
	mock.ExpectQuery("FROM orders WHERE id = \\?").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(9, "ORD-TEST", "Nguyễn Văn A", "0901234567", "", 100000.0, "pending", "", "", "2025-01-02 10:00:00", "2025-01-02 10:00:00"))
	mock.ExpectQuery("FROM order_items").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "price", "quantity"}).
			AddRow("GK01", "Giặt khô", 50000.0, 2.0))

	svc := OrderService{
		OrderRepo:   repositories.OrderRepository{DB: db},
		ProductRepo: repositories.ProductRepository{DB: db},
		DB:          db,
	}
	out, err := svc.CreateOrder(CreateOrderInput{
		CustomerName: "Nguyễn Văn A",
		Phone:        "0901234567",
		Items:        []CreateOrderItem{{ProductID: "GK01", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order error: %v", err)
	}
	if out.Total != 100000 {
		t.Fatalf("total = %.0f, want 100000", out.Total)
	}
	if len(out.Items) != 1 || out.Items[0].Price != 50000 {
		t.Fatalf("line price should come from the catalog, got %+v", out.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc := OrderService{}

	_, err := svc.CreateOrder(CreateOrderInput{Phone: "0901", Items: []CreateOrderItem{{ProductID: "GK01", Quantity: 1}}})
	if !domain.IsValidation(err) {
		t.Fatalf("missing name should be rejected, got %v", err)
	}

	_, err = svc.CreateOrder(CreateOrderInput{CustomerName: "A", Phone: "0901"})
	if !domain.IsValidation(err) {
		t.Fatalf("empty items should be rejected, got %v", err)
	}

	_, err = svc.CreateOrder(CreateOrderInput{
		CustomerName: "A",
		Phone:        "0901",
		Items:        []CreateOrderItem{{ProductID: "GK01", Quantity: 0}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("zero quantity should be rejected, got %v", err)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))

	svc := OrderService{OrderRepo: repositories.OrderRepository{DB: db}, DB: db}
	_, err = svc.UpdateStatus(3, "processing")
	if !domain.IsConflict(err) {
		t.Fatalf("terminal order must not change status, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := OrderService{}
	_, err := svc.UpdateStatus(3, "shipped")
	if !domain.IsValidation(err) {
		t.Fatalf("unknown status should be rejected, got %v", err)
	}
}

func TestNewOrderCodeShape(t *testing.T) {
	code := newOrderCode()
	if !strings.HasPrefix(code, "ORD-") || len(code) != len("ORD-")+8 {
		t.Fatalf("unexpected order code %q", code)
	}
	if code == newOrderCode() {
		t.Fatalf("order codes must not repeat")
	}
}
