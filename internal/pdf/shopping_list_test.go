package pdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmptyList(t *testing.T) {
	out, err := Render(nil)

	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_Lines(t *testing.T) {
	out, err := Render([]Line{
		{Name: "Salt", MeasurementUnit: "g", Amount: 15},
		{Name: "Flour", MeasurementUnit: "g", Amount: 500},
	})

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_PaginatesLongLists(t *testing.T) {
	var long []Line
	for i := 0; i < 200; i++ {
		long = append(long, Line{Name: fmt.Sprintf("Ingredient %d", i), MeasurementUnit: "g", Amount: i + 1})
	}

	short, err := Render(long[:2])
	require.NoError(t, err)
	full, err := Render(long)
	require.NoError(t, err)

	// 200 lines at 20pt each cannot fit one Letter page
	assert.Greater(t, len(full), len(short))
}
