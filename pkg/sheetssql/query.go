package sheetssql

import (
	"fmt"
	"reflect"
	"strconv"
)

// GetTableAs reads every data row of a table and maps the rows to structs of
// type T by matching `sheet` tags against the header row. Columns missing
// from a row are left at their zero value.
func GetTableAs[T any](db *DB, tableName string) ([]T, error) {
	rows, err := db.ReadTable(tableName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []T{}, nil
	}

	headers, err := db.headers(tableName)
	if err != nil {
		return nil, err
	}

	columnIndexes := make(map[string]int, len(headers))
	for i, header := range headers {
		if headerStr, ok := header.(string); ok {
			columnIndexes[headerStr] = i
		}
	}

	var model T
	t := reflect.TypeOf(model)

	fieldByColumn := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if columnName := field.Tag.Get("sheet"); columnName != "" {
			fieldByColumn[columnName] = field
		}
	}

	results := make([]T, 0, len(rows))
	for rowIdx, row := range rows {
		result := reflect.New(t).Elem()

		for columnName, colIdx := range columnIndexes {
			field, ok := fieldByColumn[columnName]
			if !ok {
				continue
			}
			if colIdx >= len(row) || row[colIdx] == nil {
				continue
			}
			if err := setFieldValue(result.FieldByName(field.Name), row[colIdx]); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+headerRows+1, columnName, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// ReplaceModels overwrites a table with the supplied structs. Column order
// follows field order, matching the schema written at table creation.
func ReplaceModels[T any](db *DB, tableName string, models []T) error {
	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		rows = append(rows, rowFromModel(model))
	}
	return db.ReplaceTable(tableName, rows)
}

func rowFromModel(model interface{}) []interface{} {
	t := reflect.TypeOf(model)
	v := reflect.ValueOf(model)

	row := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("sheet") == "" {
			continue
		}
		row = append(row, v.Field(i).Interface())
	}
	return row
}

// setFieldValue converts a sheet cell (always a string over the API) to the
// field's Go type.
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr, ok := cellValue.(string)
	if !ok {
		return fmt.Errorf("cell value is not a string")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cellStr == "" {
			field.SetInt(0)
			return nil
		}
		intVal, err := strconv.ParseInt(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Bool:
		if cellStr == "" {
			field.SetBool(false)
			return nil
		}
		boolVal, err := strconv.ParseBool(cellStr)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
