package web

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/blockfall/internal/domain"
)

func TestRenderIndex(t *testing.T) {
	var sb strings.Builder
	err := RenderIndex(&sb, Page{
		Dimension: domain.Dimension{Rows: 4, Columns: 6},
		Target:    domain.Target{MinScore: 6, MaxMoves: 2},
	})
	require.NoError(t, err)
	out := sb.String()
	assert.Contains(t, out, `data-rows="4"`)
	assert.Contains(t, out, "4x6 board, target 6 points in 2 moves")
}

func TestStaticFS(t *testing.T) {
	for _, name := range []string{"app.css", "app.js"} {
		f, err := StaticFS().Open(name)
		require.NoError(t, err, name)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		f.Close()
	}
}
