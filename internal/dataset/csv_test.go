package dataset

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipeapi/internal/model"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols []string
		wantRows []model.RecordRow
	}{
		{
			name:     "header and rows",
			input:    "name,calories\nAlice,2000\nBob,2200\n",
			wantCols: []string{"name", "calories"},
			wantRows: []model.RecordRow{
				{"name": "Alice", "calories": "2000"},
				{"name": "Bob", "calories": "2200"},
			},
		},
		{
			name:     "header only",
			input:    "name,calories\n",
			wantCols: []string{"name", "calories"},
			wantRows: []model.RecordRow{},
		},
		{
			name:     "blank lines are skipped",
			input:    "\nname,diet\n\nAlice,vegan\n\n\nBob,keto\n\n",
			wantCols: []string{"name", "diet"},
			wantRows: []model.RecordRow{
				{"name": "Alice", "diet": "vegan"},
				{"name": "Bob", "diet": "keto"},
			},
		},
		{
			name:     "crlf line endings and quoted commas",
			input:    "name,allergies\r\nAlice,\"nuts, shellfish\"\r\n",
			wantCols: []string{"name", "allergies"},
			wantRows: []model.RecordRow{
				{"name": "Alice", "allergies": "nuts, shellfish"},
			},
		},
		{
			name:     "utf-8 bom is dropped",
			input:    "\ufeffname,cuisine\nAlice,日本料理\n",
			wantCols: []string{"name", "cuisine"},
			wantRows: []model.RecordRow{
				{"name": "Alice", "cuisine": "日本料理"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, set.Columns)
			assert.Equal(t, tt.wantRows, set.Rows)
			assert.Equal(t, len(tt.wantRows), set.Len())
		})
	}
}

func TestDecode_PreservesOrderAndKeys(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,meal,protein\n")
	for i := 0; i < 50; i++ {
		b.WriteString(strings.Repeat("x", i%3))
		b.WriteString(",m,")
		b.WriteString(string(rune('a' + i%26)))
		b.WriteString("\n")
	}

	set, err := Decode(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, set.Rows, 50)

	for i, row := range set.Rows {
		assert.Len(t, row, 3)
		assert.Equal(t, strings.Repeat("x", i%3), row["id"])
		assert.Equal(t, string(rune('a'+i%26)), row["protein"])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty input", input: "", wantErr: ErrMissingHeader},
		{name: "only blank lines", input: "\n\n\n", wantErr: ErrMissingHeader},
		{name: "duplicate column", input: "name,name\na,b\n", wantErr: ErrInvalidHeader},
		{name: "empty column name", input: "name,,age\na,b,c\n", wantErr: ErrInvalidHeader},
		{name: "binary content", input: "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR", wantErr: ErrInvalidUTF8},
		{name: "invalid utf-8 in row", input: "name\n\xc3\x28\n", wantErr: ErrInvalidUTF8},
		{name: "short row", input: "name,calories\nAlice\n", wantErr: csv.ErrFieldCount},
		{name: "utf-16le with bom", input: utf16LE("\ufeffname,calories\nAlice,2000\n"), wantErr: ErrInvalidUTF8},
		{name: "utf-16be with bom", input: "\xfe\xff\x00n\x00a\x00m\x00e\x00\n\x00A\x00l\x00\n", wantErr: ErrInvalidUTF8},
		{name: "unterminated quote", input: "name,calories\n\"Alice,2000\n", wantErr: csv.ErrQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

// utf16LE encodes s (ASCII plus BOM) as little-endian UTF-16.
func utf16LE(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteByte(byte(r))
		b.WriteByte(byte(r >> 8))
	}
	return b.String()
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestDecode_StreamError(t *testing.T) {
	_, err := Decode(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}
