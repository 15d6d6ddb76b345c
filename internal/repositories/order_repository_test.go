package repositories

import (
	"testing"

	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOrderListBuildsFiltersAndPaging(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders").
		WithArgs("%an%", "%an%", "%an%", "pending", "2025-01-01 00:00:00", "2025-01-07 23:59:59").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	orderCols := []string{
		"id", "order_id", "customer_name", "phone", "note", "total", "status",
		"completed_date", "cancelled_date", "created_at", "updated_at",
	}
	mock.ExpectQuery("FROM orders WHERE .*ORDER BY total ASC, id DESC LIMIT \\? OFFSET \\?").
		WithArgs("%an%", "%an%", "%an%", "pending", "2025-01-01 00:00:00", "2025-01-07 23:59:59", 5, 5).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(7, "ORD-1a2b3c4d", "Trần Thị B", "0909", "", 130000.0, "pending", "", "", "2025-01-02 10:00:00", "2025-01-02 10:00:00"))

	mock.ExpectQuery("FROM order_items").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "price", "quantity"}).
			AddRow("GK01", "Giặt khô", 50000.0, 2.0).
			AddRow("GU02", "Giặt ủi", 30000.0, 1.0))

	repo := OrderRepository{DB: db}
	list, total, err := repo.List(ListParams{
		Page:      2,
		Limit:     5,
		SortField: "total",
		SortDir:   "asc",
		Search:    "an",
		Status:    "pending",
		From:      "2025-01-01 00:00:00",
		To:        "2025-01-07 23:59:59",
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 12 {
		t.Fatalf("total = %d, want 12", total)
	}
	if len(list) != 1 || len(list[0].Items) != 2 {
		t.Fatalf("unexpected page: %+v", list)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderInsertWritesItemsInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(9), "GK01", "Giặt khô", 50000.0, 2.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := OrderRepository{DB: db}
	id, err := repo.Insert(orderFixture())
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if id != 9 {
		t.Fatalf("id = %d, want 9", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusStampsCompletedDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET status = \\?, updated_at = NOW\\(\\), completed_date = NOW\\(\\)").
		WithArgs("completed", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := OrderRepository{DB: db}
	if err := repo.UpdateStatus(3, string(domain.StatusCompleted)); err != nil {
		t.Fatalf("update status error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func orderFixture() (o models.Order) {
	o.OrderID = "ORD-1a2b3c4d"
	o.CustomerName = "Trần Thị B"
	o.Phone = "0909"
	o.Total = 100000
	o.Status = "pending"
	o.Items = append(o.Items, models.OrderItem{ProductID: "GK01", ProductName: "Giặt khô", Price: 50000, Quantity: 2})
	return o
}
