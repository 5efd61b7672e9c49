package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProseMirror(t *testing.T) {
	s := compileLwDITA(t)
	spec := s.ProseMirror()

	assert.Equal(t, "doc", spec.TopNode)
	require.Len(t, spec.Nodes, len(s.Nodes))
	require.Len(t, spec.Marks, len(s.Marks))

	byKey := map[string]int{}
	for i, n := range spec.Nodes {
		byKey[n.Key] = i
	}

	text := spec.Nodes[byKey["text"]]
	assert.Empty(t, text.Attrs)
	assert.True(t, text.Inline)

	fn := spec.Nodes[byKey["fn"]]
	assert.True(t, fn.Inline)
	assert.True(t, fn.Atom)
	require.Contains(t, fn.Attrs, "parent")
	assert.Equal(t, "", fn.Attrs["parent"].Default)

	p := spec.Nodes[byKey["block_p"]]
	assert.False(t, p.Inline)
	assert.False(t, p.Atom)
	assert.Equal(t, "(text|hard_break|data|fn|xref|ph|image)*", p.Content)

	assert.Equal(t, "b", spec.Marks[0].Key)
	assert.Contains(t, spec.Marks[0].Attrs, "outputclass")
}
