package sheetssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomSlot struct {
	Room string `sheet:"room" sheettype:"text"`
	Hour int    `sheet:"hour" sheettype:"int"`
}

func (roomSlot) TableName() string { return "slots" }

func TestSchemaFromModels(t *testing.T) {
	schema, err := SchemaFromModels(booking{}, roomSlot{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 2)

	// Struct name snake_cased when there is no TableNamer.
	assert.Equal(t, "booking", schema.Tables[0].Name)
	assert.Equal(t, []Column{
		{Name: "date", Type: "date"},
		{Name: "slot", Type: "int"},
		{Name: "paid", Type: "bool"},
	}, schema.Tables[0].Columns)

	// TableNamer wins over the derived name.
	assert.Equal(t, "slots", schema.Tables[1].Name)
}

func TestSchemaFromModels_MissingTags(t *testing.T) {
	type noSheet struct {
		Room string `sheettype:"text"`
	}
	type noType struct {
		Room string `sheet:"room"`
	}

	_, err := SchemaFromModels(noSheet{})
	assert.ErrorContains(t, err, "missing 'sheet' tag")

	_, err = SchemaFromModels(noType{})
	assert.ErrorContains(t, err, "missing 'sheettype' tag")
}

func TestSchemaFromModels_NotAStruct(t *testing.T) {
	_, err := SchemaFromModels("not a model")
	assert.ErrorContains(t, err, "must be a struct")
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "room_slot", toSnakeCase("RoomSlot"))
	assert.Equal(t, "booking", toSnakeCase("Booking"))
	assert.Equal(t, "abc", toSnakeCase("abc"))
}

func TestVerifyTableSchema(t *testing.T) {
	schema, err := SchemaFromModels(roomSlot{})
	require.NoError(t, err)

	client := newFakeClient()
	client.seedTable("slots",
		[]interface{}{"room", "hour"},
		[]interface{}{"text", "int"})
	db := Open(client, "sheet-id", schema, 0)

	assert.NoError(t, db.verifyTableSchema(schema.Tables[0]))
}

func TestVerifyTableSchema_Mismatch(t *testing.T) {
	schema, err := SchemaFromModels(roomSlot{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers []interface{}
		types   []interface{}
		wantErr string
	}{
		{
			name:    "wrong header",
			headers: []interface{}{"room", "minute"},
			types:   []interface{}{"text", "int"},
			wantErr: "expected header",
		},
		{
			name:    "wrong type",
			headers: []interface{}{"room", "hour"},
			types:   []interface{}{"text", "text"},
			wantErr: "expected type",
		},
		{
			name:    "missing column",
			headers: []interface{}{"room"},
			types:   []interface{}{"text"},
			wantErr: "expected 2 columns",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newFakeClient()
			client.seedTable("slots", tc.headers, tc.types)
			db := Open(client, "sheet-id", schema, 0)

			err := db.verifyTableSchema(schema.Tables[0])
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestCreateTable(t *testing.T) {
	schema, err := SchemaFromModels(roomSlot{})
	require.NoError(t, err)

	client := newFakeClient()
	db := Open(client, "sheet-id", schema, 0)

	require.NoError(t, db.createTable(schema.Tables[0]))

	rows, err := client.GetValues("sheet-id", "slots")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"room", "hour"}, rows[0])
	assert.Equal(t, []interface{}{"text", "int"}, rows[1])
}
