package services

import (
	"database/sql"
	"strings"
	"time"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"
	"laundry-admin/internal/repositories"
	"laundry-admin/internal/utils"
)

type DashboardService struct {
	Repo      repositories.DashboardRepository
	DB        *sql.DB
	RequestID string
}

func (s DashboardService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DashboardService) repo() repositories.DashboardRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.DashboardRepository{DB: s.db()}
}

// Get assembles the dashboard payload for the requested range. timeRange
// accepts today, week, month or year; explicit from/to override it.
func (s DashboardService) Get(timeRange, fromStr, toStr string) (models.Dashboard, error) {
	var out models.Dashboard

	from, to, label, err := resolveRange(timeRange, fromStr, toStr, time.Now())
	if err != nil {
		return out, err
	}
	fromArg := utils.FormatDateTime(from)
	toArg := utils.FormatDateTime(to)

	repo := s.repo()

	stats, err := repo.CountByStatus(fromArg, toArg)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	total, err := repo.RevenueTotal(fromArg, toArg)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	// Single-day ranges chart per hour, longer ranges per day.
	hourly := to.Sub(from) <= 24*time.Hour
	series, err := repo.RevenueSeries(fromArg, toArg, hourly)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	recent, err := repo.Recent(5)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	pending, err := repo.ListByStatus(string(domain.StatusPending), 5)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	cancelled, err := repo.ListByStatus(string(domain.StatusCancelled), 5)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	out.OrderStats = stats
	out.Revenue.Total = total
	out.Revenue.TimeRange = label
	out.TimeRangeRevenue = series
	out.RecentOrders = recent
	out.PendingOrders = pending
	out.CancelledOrders = cancelled

	utils.LogEvent(s.RequestID, "dashboard", "get", "range="+label)
	return out, nil
}

func resolveRange(timeRange, fromStr, toStr string, now time.Time) (time.Time, time.Time, string, error) {
	if fromStr != "" || toStr != "" {
		from, err := utils.ParseDateTime(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, "", domain.ValidationError{Field: "from", Msg: "Ngày không hợp lệ"}
		}
		to, err := utils.ParseDateTime(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, "", domain.ValidationError{Field: "to", Msg: "Ngày không hợp lệ"}
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, "", domain.ValidationError{Field: "to", Msg: "Khoảng thời gian không hợp lệ"}
		}
		return utils.StartOfDay(from), utils.EndOfDay(to), "custom", nil
	}

	label := strings.TrimSpace(timeRange)
	if label == "" {
		label = "week"
	}
	to := utils.EndOfDay(now)
	var from time.Time
	switch label {
	case "today":
		from = utils.StartOfDay(now)
	case "week":
		from = utils.StartOfDay(now.AddDate(0, 0, -6))
	case "month":
		from = utils.StartOfDay(now.AddDate(0, -1, 0))
	case "year":
		from = utils.StartOfDay(now.AddDate(-1, 0, 0))
	default:
		return time.Time{}, time.Time{}, "", domain.ValidationError{Field: "timeRange", Msg: "Khoảng thời gian không hợp lệ"}
	}
	return from, to, label, nil
}
