package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "laundry-admin/internal/config"
	intdb "laundry-admin/internal/db"
	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"
)

type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var orderSortColumns = map[string]string{
	"createdAt": "created_at",
	"total":     "total",
}

const orderSelect = `
	SELECT id, order_id, customer_name, phone,
	       COALESCE(note,'') AS note,
	       total, status,
	       COALESCE(DATE_FORMAT(completed_date, '%Y-%m-%d %H:%i:%s'),'') AS completed_date,
	       COALESCE(DATE_FORMAT(cancelled_date, '%Y-%m-%d %H:%i:%s'),'') AS cancelled_date,
	       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'),
	       DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s')
	FROM orders
`

// List returns one page of orders (items included) plus the total count.
func (r OrderRepository) List(p ListParams) ([]models.Order, int, error) {
	p = p.normalized()

	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(p.Search); q != "" {
		where = append(where, "(customer_name LIKE ? OR order_id LIKE ? OR phone LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if p.Status != "" {
		where = append(where, "status = ?")
		args = append(args, p.Status)
	}
	if p.From != "" {
		where = append(where, "created_at >= ?")
		args = append(args, p.From)
	}
	if p.To != "" {
		where = append(where, "created_at <= ?")
		args = append(args, p.To)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow("SELECT COUNT(*) FROM orders WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := orderSortColumns[p.SortField]
	if !ok {
		col = "created_at"
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, id DESC LIMIT ? OFFSET ?",
		orderSelect, cond, col, strings.ToUpper(p.SortDir))
	args = append(args, p.Limit, p.offset())

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range list {
		items, err := r.listItems(list[i].ID)
		if err != nil {
			return nil, 0, err
		}
		list[i].Items = items
	}
	return list, total, nil
}

func (r OrderRepository) GetByID(id int64) (models.Order, error) {
	var o models.Order
	err := scanOrder(r.db().QueryRow(orderSelect+" WHERE id = ?", id), &o)
	if err == sql.ErrNoRows {
		return o, domain.NotFoundError{Resource: "đơn hàng"}
	}
	if err != nil {
		return o, err
	}
	o.Items, err = r.listItems(o.ID)
	return o, err
}

// Insert stores the order and its item lines in one transaction.
func (r OrderRepository) Insert(o models.Order) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO orders (order_id, customer_name, phone, note, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, o.OrderID, o.CustomerName, o.Phone, intdb.NullIfEmpty(o.Note), o.Total, o.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_ref, product_id, product_name, price, quantity)
			VALUES (?, ?, ?, ?, ?)
		`, id, it.ProductID, it.ProductName, it.Price, it.Quantity); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetStatus reads the current status for transition checks.
func (r OrderRepository) GetStatus(id int64) (string, error) {
	var status string
	err := r.db().QueryRow(`SELECT status FROM orders WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return "", domain.NotFoundError{Resource: "đơn hàng"}
	}
	return status, err
}

// UpdateStatus sets the new status and stamps the matching date column.
func (r OrderRepository) UpdateStatus(id int64, status string) error {
	set := "status = ?, updated_at = NOW()"
	switch status {
	case string(domain.StatusCompleted):
		set += ", completed_date = NOW()"
	case string(domain.StatusCancelled):
		set += ", cancelled_date = NOW()"
	}
	res, err := r.db().Exec("UPDATE orders SET "+set+" WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "đơn hàng"}
	}
	return nil
}

func (r OrderRepository) listItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db().Query(`
		SELECT product_id, product_name, price, quantity
		FROM order_items
		WHERE order_ref = ?
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row rowScanner, o *models.Order) error {
	return row.Scan(
		&o.ID,
		&o.OrderID,
		&o.CustomerName,
		&o.Phone,
		&o.Note,
		&o.Total,
		&o.Status,
		&o.CompletedDate,
		&o.CancelledDate,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}
