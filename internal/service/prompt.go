package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"recipeapi/internal/config"
	"recipeapi/internal/model"
)

// SystemPrompt frames every recommendation request.
const SystemPrompt = "You are a food and nutrition expert."

const userPromptTemplate = "Given this user data: %s%s, analyze nutrition and taste preferences, " +
	"and recommend a recipe (with ingredients, calories, macros, taste profile, cuisine, etc.)."

// BuildPrompt embeds the records as a JSON array in the user prompt and reports how many rows
// made it in. Rows are taken in file order until limits.MaxRows rows or limits.MaxChars bytes of
// JSON would be exceeded; the first row is always included. Zero limits mean unbounded.
func BuildPrompt(records model.RecordSet, limits config.PromptConfig) (string, int) {
	var b bytes.Buffer
	b.WriteByte('[')

	n := 0
	for _, row := range records.Rows {
		if limits.MaxRows > 0 && n >= limits.MaxRows {
			break
		}
		obj := encodeRow(records.Columns, row)
		if n > 0 && limits.MaxChars > 0 && b.Len()+1+len(obj)+1 > limits.MaxChars {
			break
		}
		if n > 0 {
			b.WriteByte(',')
		}
		b.Write(obj)
		n++
	}
	b.WriteByte(']')

	var note string
	if n < records.Len() {
		note = fmt.Sprintf(" (showing the first %d of %d rows)", n, records.Len())
	}
	return fmt.Sprintf(userPromptTemplate, b.String(), note), n
}

// encodeRow writes row as a JSON object with keys in header order.
func encodeRow(columns []string, row model.RecordRow) []byte {
	keys := columns
	if len(keys) == 0 {
		keys = make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(enc, &b, k)
		b.WriteByte(':')
		writeJSONString(enc, &b, row[k])
	}
	b.WriteByte('}')
	return b.Bytes()
}

// writeJSONString encodes s and drops the newline json.Encoder appends.
func writeJSONString(enc *json.Encoder, b *bytes.Buffer, s string) {
	_ = enc.Encode(s)
	b.Truncate(b.Len() - 1)
}
