package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)

	out := buf.String()
	assert.NotContains(t, out, "\x1b[", "a buffer is not a terminal and gets no escape codes")
	assert.Equal(t, len(bannerLines)+2, strings.Count(out, "\n"))
	assert.Contains(t, out, bannerLines[2].text)
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := render("# barrier\n\n| Port | Direction |\n|---|---|\n| in | in |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "barrier")
	assert.Contains(t, out, "Direction")
}
