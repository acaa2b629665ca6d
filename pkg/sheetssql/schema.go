package sheetssql

import (
	"fmt"
	"reflect"
	"strings"
)

// TableNamer lets a model override the table name derived from its struct
// name.
type TableNamer interface {
	TableName() string
}

// SchemaFromModels builds a Schema by reflecting on struct definitions. Each
// struct is one table; every field needs `sheet` (column name) and
// `sheettype` (column type) tags. Field order fixes column order.
func SchemaFromModels(models ...interface{}) (*Schema, error) {
	tables := make([]TableSchema, 0, len(models))

	for _, model := range models {
		table, err := tableSchemaFromModel(model)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return &Schema{Tables: tables}, nil
}

func tableSchemaFromModel(model interface{}) (TableSchema, error) {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return TableSchema{}, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	columns := make([]Column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		name := field.Tag.Get("sheet")
		if name == "" {
			return TableSchema{}, fmt.Errorf("field %s.%s missing 'sheet' tag", t.Name(), field.Name)
		}
		colType := field.Tag.Get("sheettype")
		if colType == "" {
			return TableSchema{}, fmt.Errorf("field %s.%s missing 'sheettype' tag", t.Name(), field.Name)
		}

		columns = append(columns, Column{Name: name, Type: colType})
	}

	if len(columns) == 0 {
		return TableSchema{}, fmt.Errorf("struct %s has no fields", t.Name())
	}

	return TableSchema{Name: tableNameOf(model), Columns: columns}, nil
}

// tableNameOf resolves the table name for a model: TableNamer when
// implemented, snake_case of the struct name otherwise.
func tableNameOf(model interface{}) string {
	if namer, ok := model.(TableNamer); ok {
		return namer.TableName()
	}

	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return toSnakeCase(t.Name())
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// ensureSchema verifies every table in the schema and creates any that are
// missing.
func (db *DB) ensureSchema() error {
	existing, err := db.existingSheets()
	if err != nil {
		return fmt.Errorf("failed to list sheets: %w", err)
	}

	sheetSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		sheetSet[name] = true
	}

	for _, table := range db.schema.Tables {
		if sheetSet[table.Name] {
			if err := db.verifyTableSchema(table); err != nil {
				return fmt.Errorf("table %s schema mismatch: %w", table.Name, err)
			}
		} else {
			if err := db.createTable(table); err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.Name, err)
			}
		}
	}

	return nil
}

func (db *DB) existingSheets() ([]string, error) {
	spreadsheet, err := db.client.Service().Spreadsheets.Get(db.spreadsheetID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	names := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		names = append(names, sheet.Properties.Title)
	}
	return names, nil
}

// verifyTableSchema checks that a table's header and type rows match the
// schema.
func (db *DB) verifyTableSchema(table TableSchema) error {
	values, err := db.client.GetValues(db.spreadsheetID, fmt.Sprintf("%s!A1:ZZ%d", table.Name, headerRows))
	if err != nil {
		return fmt.Errorf("failed to read table headers: %w", err)
	}
	if len(values) < headerRows {
		return fmt.Errorf("table missing header or type row")
	}

	headers := values[0]
	types := values[1]

	if len(headers) != len(table.Columns) {
		return fmt.Errorf("expected %d columns, found %d", len(table.Columns), len(headers))
	}

	for i, col := range table.Columns {
		headerStr, ok := headers[i].(string)
		if !ok || headerStr != col.Name {
			return fmt.Errorf("column %d: expected header %q, got %v", i, col.Name, headers[i])
		}
		if i >= len(types) {
			return fmt.Errorf("missing type for column %s", col.Name)
		}
		typeStr, ok := types[i].(string)
		if !ok || typeStr != col.Type {
			return fmt.Errorf("column %d (%s): expected type %q, got %v", i, col.Name, col.Type, types[i])
		}
	}

	return nil
}

// createTable creates a new sheet and writes the header and type rows.
func (db *DB) createTable(table TableSchema) error {
	if _, err := db.client.CreateSheet(db.spreadsheetID, table.Name); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := make([]interface{}, len(table.Columns))
	types := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		headers[i] = col.Name
		types[i] = col.Type
	}

	if err := db.client.UpdateValues(db.spreadsheetID, table.Name+"!A1", [][]interface{}{headers, types}); err != nil {
		return fmt.Errorf("failed to write headers and types: %w", err)
	}

	return nil
}
