package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	t.Parallel()

	subject, text, html, err := Render(Welcome, map[string]any{"Name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Noteplus", subject)
	assert.Contains(t, text, "Hi Alice")
	assert.Contains(t, html, "Hi Alice")
}

func TestRender_UnknownTemplate(t *testing.T) {
	t.Parallel()

	_, _, _, err := Render("no-such-template", nil)
	assert.Error(t, err)
}

func TestRender_EscapesHTML(t *testing.T) {
	t.Parallel()

	_, text, html, err := Render(Welcome, map[string]any{"Name": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>x</script>")
	assert.Contains(t, text, "<script>x</script>")
}
