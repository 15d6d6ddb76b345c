package repositories

import (
	"database/sql"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain/models"
)

type DashboardRepository struct {
	DB *sql.DB
}

func (r DashboardRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CountByStatus aggregates order counts inside the range.
func (r DashboardRepository) CountByStatus(from, to string) (models.OrderStats, error) {
	var s models.OrderStats
	err := r.db().QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(status = 'pending'), 0),
		       COALESCE(SUM(status = 'completed'), 0),
		       COALESCE(SUM(status = 'cancelled'), 0)
		FROM orders
		WHERE created_at >= ? AND created_at <= ?
	`, from, to).Scan(&s.Total, &s.Pending, &s.Completed, &s.Cancelled)
	return s, err
}

// RevenueTotal sums completed orders inside the range.
func (r DashboardRepository) RevenueTotal(from, to string) (float64, error) {
	var total float64
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'completed' AND created_at >= ? AND created_at <= ?
	`, from, to).Scan(&total)
	return total, err
}

// RevenueSeries buckets completed-order revenue by day, or by hour when
// hourly is set (single-day ranges).
func (r DashboardRepository) RevenueSeries(from, to string, hourly bool) ([]models.RevenuePoint, error) {
	bucket := "DATE_FORMAT(created_at, '%Y-%m-%d')"
	if hourly {
		bucket = "DATE_FORMAT(created_at, '%Y-%m-%d %H:00')"
	}
	rows, err := r.db().Query(`
		SELECT `+bucket+` AS bucket, COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'completed' AND created_at >= ? AND created_at <= ?
		GROUP BY bucket
		ORDER BY bucket ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RevenuePoint{}
	for rows.Next() {
		var p models.RevenuePoint
		if err := rows.Scan(&p.Date, &p.Revenue); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByStatus returns the newest orders with the given status.
func (r DashboardRepository) ListByStatus(status string, limit int) ([]models.Order, error) {
	return r.list("WHERE status = ?", limit, status)
}

// Recent returns the newest orders regardless of status.
func (r DashboardRepository) Recent(limit int) ([]models.Order, error) {
	return r.list("", limit)
}

func (r DashboardRepository) list(cond string, limit int, args ...any) ([]models.Order, error) {
	if limit < 1 {
		limit = 5
	}
	args = append(args, limit)
	rows, err := r.db().Query(orderSelect+" "+cond+" ORDER BY created_at DESC, id DESC LIMIT ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
