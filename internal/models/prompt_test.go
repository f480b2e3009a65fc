package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizengine/internal/models"
)

func TestPrompt_DecodesEachShape(t *testing.T) {
	var q struct {
		Text       models.Prompt `json:"text"`
		Grid       models.Prompt `json:"grid"`
		Structured models.Prompt `json:"structured"`
	}
	doc := `{
		"text": "2, 4, 8, ?",
		"grid": [[1, 2, 3], [4, 5, 6], [7, 8, null]],
		"structured": {"premises": ["All A are B", "Some B are C"], "conclusion": "Some A are C"}
	}`

	require.NoError(t, json.Unmarshal([]byte(doc), &q))

	assert.Equal(t, models.PromptText, q.Text.Kind)
	assert.Equal(t, "2, 4, 8, ?", q.Text.Text)

	assert.Equal(t, models.PromptGrid, q.Grid.Kind)
	assert.Equal(t, "5", q.Grid.Grid[1][1])
	assert.Equal(t, "", q.Grid.Grid[2][2])
	assert.Equal(t, 1, q.Grid.EmptyCells())

	assert.Equal(t, models.PromptStructured, q.Structured.Kind)
	require.NotNil(t, q.Structured.Structured)
	assert.Len(t, q.Structured.Structured.Premises, 2)
	assert.Equal(t, "Some A are C", q.Structured.Structured.Conclusion)
}

func TestPrompt_GridNeedsExactlyOneEmptyCell(t *testing.T) {
	var p models.Prompt
	err := json.Unmarshal([]byte(`[[1, 2], [3, 4]]`), &p)
	assert.ErrorContains(t, err, "exactly one empty cell")

	err = json.Unmarshal([]byte(`[[null, 2], [3, ""]]`), &p)
	assert.ErrorContains(t, err, "found 2")
}

func TestPrompt_GridEncodesEmptyCellAsNull(t *testing.T) {
	p := models.GridPrompt([][]string{{"a", "b"}, {"c", ""}})

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[["a","b"],["c",null]]`, string(out))
}

func TestPrompt_RejectsScalars(t *testing.T) {
	var p models.Prompt
	assert.Error(t, json.Unmarshal([]byte(`42`), &p))
}
