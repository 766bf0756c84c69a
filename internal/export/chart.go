package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-analyze/charts"
	"gitlab.com/yelinaung/finance-bot/internal/ledger"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("no expenses to chart")

// ExpenseChart renders the expense categories of s as a PNG pie chart.
func ExpenseChart(title string, s ledger.Summary) ([]byte, error) {
	if len(s.ExpenseByCategory) == 0 {
		return nil, ErrNoData
	}

	values := make([]float64, 0, len(s.ExpenseByCategory))
	names := make([]string, 0, len(s.ExpenseByCategory))
	for _, c := range ledger.Rank(s.ExpenseByCategory) {
		names = append(names, c.Category)
		values = append(values, c.Total.InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// ChartFilename names a report chart, e.g. "chart_week_2026-01-31.png".
func ChartFilename(period ledger.Period, now time.Time) string {
	if period == ledger.All {
		return fmt.Sprintf("chart_%s.png", now.Format("2006-01-02"))
	}
	return fmt.Sprintf("chart_%s_%s.png", period, now.Format("2006-01-02"))
}
