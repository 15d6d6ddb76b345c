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

type ProductRepository struct {
	DB *sql.DB
}

func (r ProductRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var productSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
}

const productSelect = `
	SELECT id, product_id, name, price,
	       COALESCE(category,'') AS category,
	       COALESCE(image,'') AS image,
	       COALESCE(description,'') AS description,
	       status, pinned,
	       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'),
	       DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s')
	FROM products
`

// List returns one page of products plus the total matching count.
func (r ProductRepository) List(p ListParams) ([]models.Product, int, error) {
	p = p.normalized()

	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(p.Search); q != "" {
		where = append(where, "(name LIKE ? OR product_id LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if p.Status != "" {
		where = append(where, "status = ?")
		args = append(args, p.Status)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow("SELECT COUNT(*) FROM products WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := productSortColumns[p.SortField]
	if !ok {
		col = "created_at"
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, id DESC LIMIT ? OFFSET ?",
		productSelect, cond, col, strings.ToUpper(p.SortDir))
	args = append(args, p.Limit, p.offset())

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Product{}
	for rows.Next() {
		var m models.Product
		if err := scanProduct(rows, &m); err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListActive returns the catalog for the order builder, pinned items
// first, keeping creation order inside each group.
func (r ProductRepository) ListActive(limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 100
	}
	rows, err := r.db().Query(productSelect+`
		WHERE status = 'active'
		ORDER BY pinned DESC, created_at ASC, id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Product{}
	for rows.Next() {
		var m models.Product
		if err := scanProduct(rows, &m); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r ProductRepository) GetByID(id int64) (models.Product, error) {
	var m models.Product
	err := scanProduct(r.db().QueryRow(productSelect+" WHERE id = ?", id), &m)
	if err == sql.ErrNoRows {
		return m, domain.NotFoundError{Resource: "sản phẩm"}
	}
	return m, err
}

func (r ProductRepository) GetByProductID(productID string) (models.Product, error) {
	var m models.Product
	err := scanProduct(r.db().QueryRow(productSelect+" WHERE product_id = ?", productID), &m)
	if err == sql.ErrNoRows {
		return m, domain.NotFoundError{Resource: "sản phẩm"}
	}
	return m, err
}

func (r ProductRepository) Create(m models.Product) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO products (product_id, name, price, category, image, description, status, pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, m.ProductID, m.Name, m.Price,
		intdb.NullIfEmpty(m.Category), intdb.NullIfEmpty(m.Image), intdb.NullIfEmpty(m.Description),
		m.Status, m.Pinned)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ProductRepository) Update(id int64, m models.Product) error {
	res, err := r.db().Exec(`
		UPDATE products
		SET name = ?, price = ?, category = ?, image = ?, description = ?, status = ?, updated_at = NOW()
		WHERE id = ?
	`, m.Name, m.Price,
		intdb.NullIfEmpty(m.Category), intdb.NullIfEmpty(m.Image), intdb.NullIfEmpty(m.Description),
		m.Status, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	return nil
}

func (r ProductRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	return nil
}

// InsertMany stores a batch of products in one transaction. Either the
// whole batch lands or none of it does.
func (r ProductRepository) InsertMany(list []models.Product) (int64, error) {
	if len(list) == 0 {
		return 0, nil
	}
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, m := range list {
		if _, err := tx.Exec(`
			INSERT INTO products (product_id, name, price, category, image, description, status, pinned, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
		`, m.ProductID, m.Name, m.Price,
			intdb.NullIfEmpty(m.Category), intdb.NullIfEmpty(m.Image), intdb.NullIfEmpty(m.Description),
			m.Status, m.Pinned); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

// DeleteMany removes products by numeric id in one statement.
func (r ProductRepository) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.db().Exec("DELETE FROM products WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetPinned persists the pin flag for one product.
func (r ProductRepository) SetPinned(productID string, pinned bool) error {
	res, err := r.db().Exec(`UPDATE products SET pinned = ?, updated_at = NOW() WHERE product_id = ?`, pinned, productID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, m *models.Product) error {
	return row.Scan(
		&m.ID,
		&m.ProductID,
		&m.Name,
		&m.Price,
		&m.Category,
		&m.Image,
		&m.Description,
		&m.Status,
		&m.Pinned,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}
