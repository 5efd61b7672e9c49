package diagnostic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsBySeverity(t *testing.T) {
	var d Diagnostics

	d.AddWarning(CodeUnknownNode, "unknown node", "body", "sectoin")
	d.AddInfo("note", "informational", "", "")
	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Error())

	d.AddError(CodeUnknownNode, "unknown root", "", "docment")
	require.True(t, d.HasErrors())
	assert.Equal(t, 3, d.Len())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)

	assert.Len(t, d.ByCode(CodeUnknownNode), 2)
	assert.EqualError(t, d.Error(), "[unknown_node] unknown root")
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Code:        CodeUnknownNode,
		Message:     `unknown node "sectoin"`,
		Kind:        "body",
		Suggestions: []string{"section"},
	}

	assert.Equal(t, `body: [unknown_node] unknown node "sectoin" (did you mean section?)`, d.String())
}

func TestMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddWarning("w", "first", "", "")
	b.AddWarning("w", "second", "", "")
	b.AddError("e", "third", "", "")

	a.Merge(b)
	assert.Len(t, a.Warnings, 2)
	assert.Len(t, a.Errors, 1)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer

	var d Diagnostics
	d.AddWarning(CodeUnknownNode, "unknown node", "body", "sectoin")
	d.Log(slog.New(slog.NewTextHandler(&buf, nil)))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "code=unknown_node")
	assert.Contains(t, out, "ref=sectoin")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
