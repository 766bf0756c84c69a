package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// Workbook sheet names.
const (
	SheetUsers      = "Users"
	SheetOperations = "Operations"
	SheetAdmins     = "Admins"
)

const timeLayout = "2006-01-02 15:04:05"

type sheet struct {
	name   string
	width  float64
	header []any
	rows   [][]any
}

// AdminWorkbook renders users, operations and admins as an XLSX workbook
// with one sheet per table.
func AdminWorkbook(users []models.User, ops []models.Operation, admins []models.Admin) ([]byte, error) {
	sheets := []sheet{
		{
			name:   SheetUsers,
			width:  20,
			header: []any{"ID", "Username", "First name", "Last name", "Registered", "Last activity"},
			rows:   userRows(users),
		},
		{
			name:   SheetOperations,
			width:  15,
			header: []any{"ID", "User ID", "Type", "Amount", "Currency", "Category", "Comment", "Original amount", "Original currency", "Created"},
			rows:   operationRows(ops),
		},
		{
			name:   SheetAdmins,
			width:  20,
			header: []any{"User ID", "Username", "Superadmin", "Added"},
			rows:   adminRows(admins),
		},
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if buf.Len() > MaxFileSize {
		return nil, ErrTooLarge
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh sheet) error {
	last, err := excelize.ColumnNumberToName(len(sh.header))
	if err != nil {
		return fmt.Errorf("failed to resolve column: %w", err)
	}
	if err := f.SetColWidth(sh.name, "A", last, sh.width); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	for i, row := range append([][]any{sh.header}, sh.rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sh.name, i+1, err)
		}
	}
	return nil
}

func userRows(users []models.User) [][]any {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{
			u.ID, u.Username, u.FirstName, u.LastName,
			u.RegisteredAt.Format(timeLayout), u.LastActivityAt.Format(timeLayout),
		})
	}
	return rows
}

func operationRows(ops []models.Operation) [][]any {
	rows := make([][]any, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, []any{
			op.ID, op.UserID, string(op.Kind),
			op.Amount.InexactFloat64(), op.Currency, op.Category, op.Comment,
			op.OriginalAmount.InexactFloat64(), op.OriginalCurrency,
			op.CreatedAt.Format(timeLayout),
		})
	}
	return rows
}

func adminRows(admins []models.Admin) [][]any {
	rows := make([][]any, 0, len(admins))
	for _, a := range admins {
		rows = append(rows, []any{a.UserID, a.Username, a.IsSuperAdmin, a.AddedAt.Format(timeLayout)})
	}
	return rows
}

// WorkbookFilename names an admin export.
func WorkbookFilename(now time.Time) string {
	return fmt.Sprintf("export_%s.xlsx", now.Format("20060102_150405"))
}
