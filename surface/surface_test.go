package surface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_AlignsColumns(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	ui := NewText(&b)

	ui.Heading("Panel")
	ui.Row("A:", "", "1")
	ui.Row("Longer label:", "hint", "2")
	require.NoError(t, ui.Flush())

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "# Panel", lines[1])
	assert.Equal(t, strings.Index(lines[2], "1"), strings.Index(lines[3], "2"))
	assert.True(t, strings.HasSuffix(lines[3], "(hint)"))
}

func TestText_FlushResetsFrame(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	ui := NewText(&b)

	ui.Row("first", "")
	require.NoError(t, ui.Flush())
	b.Reset()

	ui.Row("second", "")
	require.NoError(t, ui.Flush())
	assert.NotContains(t, b.String(), "first")
	assert.Contains(t, b.String(), "second")
}

func TestWindow_DrawsFrame(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	ui := NewWindow(&b, "Title")

	ui.Row("label", "", "value")
	require.NoError(t, ui.Flush())

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "+-Title "))
	for _, l := range lines {
		assert.Equal(t, len(lines[0]), len(l), "line %q", l)
	}
	assert.True(t, strings.HasPrefix(lines[1], "| label"))
	assert.True(t, strings.HasSuffix(lines[1], " |"))
}
