package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/checkstate/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "JSON", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, "ParseFormat(%q)", valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Indent: "  "}
	require.NoError(t, f.Format(&buf, map[string]string{"key": "value"}))
	assert.JSONEq(t, `{"key": "value"}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}
	require.NoError(t, f.Format(&buf, map[string]string{"key": "value"}))
	assert.Contains(t, buf.String(), "key: value")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	data := table.Data{
		Headers: []string{"subdir", "commit"},
		Rows: [][]string{
			{"proj", "aaaaaaa"},
			{"notes", "bbbbbbb"},
		},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
	require.NoError(t, f.Format(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "proj")
	assert.Contains(t, out, "bbbbbbb")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	require.NoError(t, f.Format(&buf, map[string]int{"n": 1}))
	assert.JSONEq(t, `{"n": 1}`, buf.String())
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &TableFormatter{}, NewFormatter(Format("bogus")))
}
