package sheetssql

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient defines the spreadsheet operations the table store needs.
type SheetsClient interface {
	GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error)
	UpdateValues(spreadsheetID, sheetRange string, values [][]interface{}) error
	ClearValues(spreadsheetID, sheetRange string) error
	CreateSheet(spreadsheetID, sheetTitle string) (int64, error)
	Service() *sheets.Service
}

// Column defines a column with name and type.
type Column struct {
	Name string
	Type string // "text", "date", "time", "int", "uuid"
}

// TableSchema defines the structure of a table.
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema defines the full set of tables.
type Schema struct {
	Tables []TableSchema
}

// DB treats one spreadsheet as a database: each sheet is a table whose first
// two rows hold column names and types. Tables are read whole and rewritten
// whole; the backing store offers no row-level atomicity, so the overwrite is
// the unit of persistence. Reads go through a TTL cache that every overwrite
// drops for the affected table.
type DB struct {
	client        SheetsClient
	spreadsheetID string
	schema        *Schema
	cache         *gocache.Cache
}

// headerRows is the number of non-data rows at the top of every table.
const headerRows = 2

// NewDB opens a Sheets database, creating or verifying every table in the
// schema. Reads are cached for ttl.
func NewDB(client SheetsClient, spreadsheetID string, schema *Schema, ttl time.Duration) (*DB, error) {
	db := Open(client, spreadsheetID, schema, ttl)

	if err := db.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// Open connects to a Sheets database without verifying the schema. Callers
// that know the tables already exist (or inject a fake client) use this.
func Open(client SheetsClient, spreadsheetID string, schema *Schema, ttl time.Duration) *DB {
	return &DB{
		client:        client,
		spreadsheetID: spreadsheetID,
		schema:        schema,
		cache:         gocache.New(ttl, 10*time.Minute),
	}
}

// SpreadsheetID returns the database spreadsheet ID.
func (db *DB) SpreadsheetID() string {
	return db.spreadsheetID
}

// ReadTable returns all data rows of a table (header and type rows stripped),
// in sheet order. Results may be served from cache within the TTL.
func (db *DB) ReadTable(tableName string) ([][]interface{}, error) {
	if cached, found := db.cache.Get(tableName); found {
		return cached.([][]interface{}), nil
	}

	values, err := db.client.GetValues(db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", tableName, err)
	}

	var rows [][]interface{}
	if len(values) > headerRows {
		rows = values[headerRows:]
	} else {
		rows = [][]interface{}{}
	}

	db.cache.SetDefault(tableName, rows)
	return rows, nil
}

// headers returns the column-name row of a table.
func (db *DB) headers(tableName string) ([]interface{}, error) {
	values, err := db.client.GetValues(db.spreadsheetID, fmt.Sprintf("%s!A1:ZZ1", tableName))
	if err != nil {
		return nil, fmt.Errorf("failed to read headers of %s: %w", tableName, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("table %s has no header row", tableName)
	}
	return values[0], nil
}

// ReplaceTable clears every data row of a table and writes the supplied rows
// in their place. The table's cache entry is dropped whether or not the write
// succeeds, so a partial failure never pins stale data.
func (db *DB) ReplaceTable(tableName string, rows [][]interface{}) error {
	defer db.cache.Delete(tableName)

	dataRange := fmt.Sprintf("%s!A%d:ZZ", tableName, headerRows+1)
	if err := db.client.ClearValues(db.spreadsheetID, dataRange); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", tableName, err)
	}

	if len(rows) == 0 {
		return nil
	}

	writeRange := fmt.Sprintf("%s!A%d", tableName, headerRows+1)
	if err := db.client.UpdateValues(db.spreadsheetID, writeRange, rows); err != nil {
		return fmt.Errorf("failed to write table %s: %w", tableName, err)
	}

	return nil
}

// InvalidateCache drops every cached table read.
func (db *DB) InvalidateCache() {
	db.cache.Flush()
}
