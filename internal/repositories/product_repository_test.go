package repositories

import (
	"testing"

	"laundry-admin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDeleteManyUsesOneStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM products WHERE id IN \\(\\?,\\?,\\?\\)").
		WithArgs(int64(1), int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := ProductRepository{DB: db}
	affected, err := repo.DeleteMany([]int64{1, 2, 3})
	if err != nil {
		t.Fatalf("delete many error: %v", err)
	}
	if affected != 3 {
		t.Fatalf("affected = %d, want 3", affected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteManyEmptyIsNoop(t *testing.T) {
	repo := ProductRepository{}
	affected, err := repo.DeleteMany(nil)
	if err != nil || affected != 0 {
		t.Fatalf("empty ids should not touch the DB, got %d %v", affected, err)
	}
}

func TestSetPinnedUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE products SET pinned").
		WithArgs(true, "GX99").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ProductRepository{DB: db}
	err = repo.SetPinned("GX99", true)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductListUnknownSortFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM products WHERE .*ORDER BY created_at DESC").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "name", "price", "category", "image",
			"description", "status", "pinned", "created_at", "updated_at",
		}))

	repo := ProductRepository{DB: db}
	list, total, err := repo.List(ListParams{SortField: "evil; DROP TABLE products"})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 0 || len(list) != 0 {
		t.Fatalf("expected empty page, got total=%d rows=%d", total, len(list))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
