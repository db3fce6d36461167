package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	svc := NewService()

	out, err := svc.Render("# Habeas Corpus\n\nArt. 5, LXVIII key points:\n\n- [ ] standing\n- [x] scope")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Habeas Corpus</h1>")
	assert.Contains(t, out, "checkbox")

	out, err = svc.Render("plain *emphasis*")
	require.NoError(t, err)
	assert.Contains(t, out, "<em>emphasis</em>")
}

func TestRenderEscapesRawHTML(t *testing.T) {
	svc := NewService()

	out, err := svc.Render(`<script>alert(1)</script>`)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
