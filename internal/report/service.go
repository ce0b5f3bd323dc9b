package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRange rejects a report range whose begin is after end.
	ErrInvalidRange = errors.New("begin date is after end date")
)

const dateLayout = "2006-01-02"

type Service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, logger: logger}
}

// TurnoverSeries sums completed-order amounts per day over [begin, end].
// Days with no orders report 0, never an absent value.
func (s *Service) TurnoverSeries(ctx context.Context, begin, end time.Time) (*TurnoverReport, error) {
	days, err := dateRange(begin, end)
	if err != nil {
		return nil, err
	}
	out := &TurnoverReport{
		Dates:   make([]string, 0, len(days)),
		Amounts: make([]decimal.Decimal, 0, len(days)),
	}
	for _, day := range days {
		from, to := dayWindow(day)
		sum, err := s.repo.SumOrderAmount(ctx, from, to, OrderCompleted)
		if err != nil {
			return nil, fmt.Errorf("sum turnover for %s: %w", day.Format(dateLayout), err)
		}
		amount := decimal.Zero
		if sum.Valid {
			amount = sum.Decimal
		}
		out.Dates = append(out.Dates, day.Format(dateLayout))
		out.Amounts = append(out.Amounts, amount)
	}
	s.logger.Debugw("turnover series assembled", "days", len(days))
	return out, nil
}

// UserSeries reports per-day new users and the cumulative user total as of
// each day's end. The total query deliberately has no lower bound.
func (s *Service) UserSeries(ctx context.Context, begin, end time.Time) (*UserReport, error) {
	days, err := dateRange(begin, end)
	if err != nil {
		return nil, err
	}
	out := &UserReport{
		Dates:      make([]string, 0, len(days)),
		NewUsers:   make([]int64, 0, len(days)),
		TotalUsers: make([]int64, 0, len(days)),
	}
	for _, day := range days {
		from, to := dayWindow(day)
		newUsers, err := s.repo.CountUsersCreatedBetween(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("count new users for %s: %w", day.Format(dateLayout), err)
		}
		totalUsers, err := s.repo.CountUsersCreatedBefore(ctx, to)
		if err != nil {
			return nil, fmt.Errorf("count total users for %s: %w", day.Format(dateLayout), err)
		}
		out.Dates = append(out.Dates, day.Format(dateLayout))
		out.NewUsers = append(out.NewUsers, newUsers)
		out.TotalUsers = append(out.TotalUsers, totalUsers)
	}
	return out, nil
}

// OrderSeries reports per-day order counts and completed counts, plus
// range-wide totals summed from the daily arrays and the completion rate.
func (s *Service) OrderSeries(ctx context.Context, begin, end time.Time) (*OrderReport, error) {
	days, err := dateRange(begin, end)
	if err != nil {
		return nil, err
	}
	out := &OrderReport{
		Dates:       make([]string, 0, len(days)),
		TotalCounts: make([]int64, 0, len(days)),
		ValidCounts: make([]int64, 0, len(days)),
	}
	completed := OrderCompleted
	for _, day := range days {
		from, to := dayWindow(day)
		total, err := s.repo.CountOrders(ctx, from, to, nil)
		if err != nil {
			return nil, fmt.Errorf("count orders for %s: %w", day.Format(dateLayout), err)
		}
		valid, err := s.repo.CountOrders(ctx, from, to, &completed)
		if err != nil {
			return nil, fmt.Errorf("count completed orders for %s: %w", day.Format(dateLayout), err)
		}
		out.Dates = append(out.Dates, day.Format(dateLayout))
		out.TotalCounts = append(out.TotalCounts, total)
		out.ValidCounts = append(out.ValidCounts, valid)
		out.TotalOrders += total
		out.ValidOrders += valid
	}
	// guard: no orders at all must yield 0.0, not NaN
	if out.TotalOrders > 0 {
		out.CompletionRate = float64(out.ValidOrders) / float64(out.TotalOrders)
	}
	return out, nil
}

// SalesTop10 projects the ranked top-seller rows into two parallel arrays,
// preserving rank order. One query over the whole window, not per-day.
func (s *Service) SalesTop10(ctx context.Context, begin, end time.Time) (*SalesTop10Report, error) {
	// compare on calendar days, same as the series reports
	if truncateToDay(begin).After(truncateToDay(end)) {
		return nil, ErrInvalidRange
	}
	from, _ := dayWindow(begin)
	_, to := dayWindow(end)
	sales, err := s.repo.TopSales(ctx, from, to, 10)
	if err != nil {
		return nil, fmt.Errorf("top sales: %w", err)
	}
	out := &SalesTop10Report{
		Names:   make([]string, 0, len(sales)),
		Numbers: make([]int64, 0, len(sales)),
	}
	for _, item := range sales {
		out.Names = append(out.Names, item.Name)
		out.Numbers = append(out.Numbers, item.Number)
	}
	return out, nil
}

// dateRange expands [begin, end] into one entry per calendar day, inclusive.
func dateRange(begin, end time.Time) ([]time.Time, error) {
	begin = truncateToDay(begin)
	end = truncateToDay(end)
	if begin.After(end) {
		return nil, ErrInvalidRange
	}
	var days []time.Time
	for day := begin; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days, nil
}

// dayWindow maps a calendar day to [00:00:00.000, 23:59:59.999], covering the
// whole day without touching the next.
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := truncateToDay(day)
	return start, start.Add(24*time.Hour - time.Millisecond)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
