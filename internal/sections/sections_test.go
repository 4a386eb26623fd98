package sections_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trt-intel/internal/sections"
)

func TestToggle(t *testing.T) {
	e := sections.New("type", "region", sections.DateSection)
	require.False(t, e.Expanded("type"))

	require.NoError(t, e.Toggle("type"))
	require.True(t, e.Expanded("type"))
	require.False(t, e.Expanded("region"))

	require.NoError(t, e.Toggle("type"))
	require.False(t, e.Expanded("type"))

	require.ErrorIs(t, e.Toggle("nope"), sections.ErrUnknownSection)
}

func TestToggleAll(t *testing.T) {
	e := sections.New("type", "region", sections.DateSection)

	require.NoError(t, e.Toggle("region"))
	e.ToggleAll()
	require.True(t, e.AllExpanded(), "partially open expands all")

	e.ToggleAll()
	for _, name := range e.Names() {
		require.False(t, e.Expanded(name), name)
	}

	e.ToggleAll()
	require.True(t, e.AllExpanded(), "all collapsed expands all")
}

func TestStateRestore(t *testing.T) {
	e := sections.New("type", "region")
	require.NoError(t, e.Toggle("region"))

	saved := e.State()
	require.Equal(t, sections.State{"type": false, "region": true}, saved)

	fresh := sections.New("type", "region")
	fresh.Restore(sections.State{"region": true, "gone": true})
	require.Equal(t, saved, fresh.State())
}

func TestDuplicateNamesCollapse(t *testing.T) {
	e := sections.New("type", "type", "region")
	require.Equal(t, []string{"type", "region"}, e.Names())
}
