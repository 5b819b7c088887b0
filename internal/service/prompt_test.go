package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipeapi/internal/config"
	"recipeapi/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	records := model.RecordSet{
		Columns: []string{"name", "calories"},
		Rows: []model.RecordRow{
			{"name": "Alice", "calories": "2000"},
			{"name": "Bob", "calories": "2200"},
		},
	}

	prompt, n := BuildPrompt(records, config.PromptConfig{})

	assert.Equal(t, 2, n)
	assert.Equal(t,
		`Given this user data: [{"name":"Alice","calories":"2000"},{"name":"Bob","calories":"2200"}], `+
			`analyze nutrition and taste preferences, and recommend a recipe `+
			`(with ingredients, calories, macros, taste profile, cuisine, etc.).`,
		prompt)
}

func TestBuildPrompt_EmptySet(t *testing.T) {
	prompt, n := BuildPrompt(model.RecordSet{Columns: []string{"name"}, Rows: []model.RecordRow{}}, config.PromptConfig{MaxRows: 10})
	assert.Equal(t, 0, n)
	assert.Contains(t, prompt, "Given this user data: [],")
	assert.NotContains(t, prompt, "showing")
}

func TestBuildPrompt_NoHTMLEscaping(t *testing.T) {
	records := model.RecordSet{
		Columns: []string{"likes"},
		Rows:    []model.RecordRow{{"likes": `mac & cheese <3 "extra"`}},
	}
	prompt, _ := BuildPrompt(records, config.PromptConfig{})
	assert.Contains(t, prompt, `{"likes":"mac & cheese <3 \"extra\""}`)
}

func TestBuildPrompt_SortedKeysWithoutColumns(t *testing.T) {
	records := model.RecordSet{Rows: []model.RecordRow{{"b": "2", "a": "1"}}}
	prompt, _ := BuildPrompt(records, config.PromptConfig{})
	assert.Contains(t, prompt, `[{"a":"1","b":"2"}]`)
}

func TestBuildPrompt_Limits(t *testing.T) {
	rows := make([]model.RecordRow, 10)
	for i := range rows {
		rows[i] = model.RecordRow{"meal": strings.Repeat("x", 20)}
	}
	records := model.RecordSet{Columns: []string{"meal"}, Rows: rows}
	// {"meal":"xxxxxxxxxxxxxxxxxxxx"} is 31 bytes.

	tests := []struct {
		name   string
		limits config.PromptConfig
		want   int
	}{
		{name: "unbounded", limits: config.PromptConfig{}, want: 10},
		{name: "row cap", limits: config.PromptConfig{MaxRows: 3}, want: 3},
		{name: "char cap", limits: config.PromptConfig{MaxChars: 100}, want: 3},
		{name: "both caps, rows tighter", limits: config.PromptConfig{MaxRows: 2, MaxChars: 1000}, want: 2},
		{name: "first row always kept", limits: config.PromptConfig{MaxChars: 5}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, n := BuildPrompt(records, tt.limits)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.want, strings.Count(prompt, `"meal"`))
			if tt.want < 10 {
				assert.Contains(t, prompt, "(showing the first")
				assert.Contains(t, prompt, "of 10 rows)")
			}
		})
	}
}
