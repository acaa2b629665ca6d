package sheetssql

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// fakeClient keeps sheet contents in memory. It understands only the range
// shapes this package produces.
type fakeClient struct {
	sheets   map[string][][]interface{}
	getErr   error
	writeErr error

	getCalls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{sheets: make(map[string][][]interface{})}
}

func splitRange(sheetRange string) (table, ref string) {
	parts := strings.SplitN(sheetRange, "!", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func (f *fakeClient) GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}

	table, ref := splitRange(sheetRange)
	rows, ok := f.sheets[table]
	if !ok {
		return nil, fmt.Errorf("no such sheet: %s", table)
	}

	switch ref {
	case "":
		return rows, nil
	case "A1:ZZ1":
		if len(rows) < 1 {
			return nil, nil
		}
		return rows[:1], nil
	case "A1:ZZ2":
		if len(rows) < 2 {
			return rows, nil
		}
		return rows[:2], nil
	default:
		return nil, fmt.Errorf("unsupported range: %s", sheetRange)
	}
}

func (f *fakeClient) UpdateValues(spreadsheetID, sheetRange string, values [][]interface{}) error {
	if f.writeErr != nil {
		return f.writeErr
	}

	// The live API hands values back as cell text regardless of what was
	// written, so store strings.
	stored := make([][]interface{}, 0, len(values))
	for _, row := range values {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%v", cell))
		}
		stored = append(stored, cells)
	}

	table, ref := splitRange(sheetRange)
	switch ref {
	case "A1":
		f.sheets[table] = stored
	case "A3":
		f.sheets[table] = append(f.sheets[table][:2], stored...)
	default:
		return fmt.Errorf("unsupported range: %s", sheetRange)
	}
	return nil
}

func (f *fakeClient) ClearValues(spreadsheetID, sheetRange string) error {
	if f.writeErr != nil {
		return f.writeErr
	}

	table, ref := splitRange(sheetRange)
	if ref != "A3:ZZ" {
		return fmt.Errorf("unsupported range: %s", sheetRange)
	}
	if rows, ok := f.sheets[table]; ok && len(rows) > 2 {
		f.sheets[table] = rows[:2]
	}
	return nil
}

func (f *fakeClient) CreateSheet(spreadsheetID, sheetTitle string) (int64, error) {
	f.sheets[sheetTitle] = [][]interface{}{}
	return int64(len(f.sheets)), nil
}

func (f *fakeClient) Service() *sheets.Service {
	return nil
}

// seedTable installs a table with header and type rows plus data rows.
func (f *fakeClient) seedTable(name string, headers, types []interface{}, data ...[]interface{}) {
	rows := [][]interface{}{headers, types}
	rows = append(rows, data...)
	f.sheets[name] = rows
}
