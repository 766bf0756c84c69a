// Package export renders operations as downloadable files: a per-user CSV,
// an admin XLSX workbook and report pie charts.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// MaxFileSize is the largest document Telegram accepts from bots.
const MaxFileSize = 50 * 1024 * 1024

// ErrTooLarge is returned when a rendered file exceeds MaxFileSize.
var ErrTooLarge = errors.New("export exceeds maximum file size")

// OperationsCSV renders ops with localized headers and kind labels.
func OperationsCSV(lang string, ops []models.Operation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		i18n.T(lang, "csv_date"),
		i18n.T(lang, "csv_type"),
		i18n.T(lang, "csv_category"),
		i18n.T(lang, "csv_amount"),
		i18n.T(lang, "csv_currency"),
		i18n.T(lang, "csv_comment"),
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range ops {
		row := []string{
			ops[i].CreatedAt.Format("2006-01-02 15:04:05"),
			KindLabel(lang, ops[i].Kind),
			ops[i].Category,
			ops[i].Amount.StringFixed(2),
			ops[i].Currency,
			ops[i].Comment,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	if buf.Len() > MaxFileSize {
		return nil, ErrTooLarge
	}
	return buf.Bytes(), nil
}

// KindLabel is the localized name of an operation kind.
func KindLabel(lang string, kind models.OperationKind) string {
	if kind == models.KindIncome {
		return i18n.T(lang, "kind_income")
	}
	return i18n.T(lang, "kind_expense")
}

// OperationsFilename names a user's CSV export.
func OperationsFilename(now time.Time) string {
	return fmt.Sprintf("operations_%s.csv", now.Format("2006-01-02"))
}
