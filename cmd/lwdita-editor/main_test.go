package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lwdita-editor/internal/diagnostic"
	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/grammar"
	"lwdita-editor/internal/schema"
	"lwdita-editor/internal/transduce"
)

const topicDoc = `{"nodeName":"document","children":[
	{"nodeName":"topic","attributes":{"id":"p1"},"children":[
		{"nodeName":"title","children":[{"nodeName":"text","content":"T"}]}]}]}`

func TestForwardOne(t *testing.T) {
	tr := transduce.New(nil, nil, transduce.DefaultConfig())

	out, err := forwardOne(tr, []byte(topicDoc))
	require.NoError(t, err)

	tree, err := editor.DecodeString(out)
	require.NoError(t, err)
	assert.Equal(t, editor.DocType, tree.Type)
	require.Len(t, tree.Content, 1)
	assert.Equal(t, "block_topic", tree.Content[0].Type)

	back, err := reverseOne(tr, []byte(out))
	require.NoError(t, err)
	assert.Contains(t, back, `"nodeName": "topic"`)
}

func TestForwardOneCollect(t *testing.T) {
	tr := transduce.New(nil, nil, transduce.Config{CollectErrors: true})

	doc := `{"nodeName":"document","children":[
		{"nodeName":"topic","children":[{"nodeName":"nosuch"}]}]}`

	out, err := forwardOne(tr, []byte(doc))
	require.ErrorIs(t, err, transduce.ErrUnknownKind)
	assert.Contains(t, out, "block_topic", "partial tree is still encoded")
}

func TestForwardOneDecodeError(t *testing.T) {
	tr := transduce.New(nil, nil, transduce.DefaultConfig())

	out, err := forwardOne(tr, []byte(`{"children":[]}`))
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestRoundtrip(t *testing.T) {
	tr := transduce.New(nil, nil, transduce.DefaultConfig())

	diff, err := roundtripAST(tr, []byte(topicDoc))
	require.NoError(t, err)
	assert.Empty(t, diff)

	tree, err := forwardOne(tr, []byte(topicDoc))
	require.NoError(t, err)

	diff, err = roundtripEditor(tr, []byte(tree))
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestEachInputKeepsOrder(t *testing.T) {
	ins := make([]input, 8)
	for i := range ins {
		ins[i] = input{name: fmt.Sprintf("in%d", i)}
	}

	var buf bytes.Buffer

	err := eachInput(&buf, ins, func(in input) (string, error) {
		if in.name == "in3" {
			return "", errors.New("boom")
		}
		return in.name + "\n", nil
	})
	require.ErrorContains(t, err, "in3: boom")
	assert.Equal(t, "in0\nin1\nin2\nin4\nin5\nin6\nin7\n", buf.String())
}

func TestWriteSchema(t *testing.T) {
	s, err := schema.Compile(grammar.LwDITA(), grammar.DocumentKind, schema.DefaultConfig())
	require.NoError(t, err)

	var js bytes.Buffer
	require.NoError(t, writeSchema(&js, s, "json"))

	var fromJSON schema.Schema
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	assert.Equal(t, s.Top, fromJSON.Top)
	assert.Len(t, fromJSON.Nodes, len(s.Nodes))

	var ym bytes.Buffer
	require.NoError(t, writeSchema(&ym, s, "yaml"))

	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, s.Top, fromYAML["top"])
	assert.Contains(t, ym.String(), "variant: block")
}

func TestPrintDiagnostics(t *testing.T) {
	var d diagnostic.Diagnostics
	d.AddWarning(diagnostic.CodeUnknownNode, "unknown node", "p", "imag")

	var buf bytes.Buffer
	printDiagnostics(&buf, &d, false)

	assert.Equal(t, "warning: p: [unknown_node] unknown node\n", buf.String())

	buf.Reset()
	printDiagnostics(&buf, &diagnostic.Diagnostics{}, false)
	assert.Empty(t, buf.String())
}

func TestNewLog(t *testing.T) {
	var buf bytes.Buffer

	quiet := newLog(&buf, false)
	quiet.Debug("hidden")
	quiet.Warn("shown", "kind", "p")
	assert.Equal(t, "level=WARN msg=shown kind=p\n", buf.String())

	buf.Reset()
	newLog(&buf, true).Debug("detail")
	assert.True(t, strings.HasPrefix(buf.String(), "level=DEBUG msg=detail"))
}

func TestOutOptKeepsStdout(t *testing.T) {
	cfg := &MainConfig{}

	_, err := cfg.outOpt(nil, "-")
	require.NoError(t, err)
	assert.Nil(t, cfg.CloseOut)
	assert.Empty(t, cfg.Out)

	cfg.closeOut()
}
