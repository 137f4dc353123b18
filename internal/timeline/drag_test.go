package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinematicketing/internal/domain"
)

func TestDragController_SessionDrag(t *testing.T) {
	// 1440px wide timeline, so one pixel is one minute.
	rect := Rect{Left: 0, Width: 1440}
	ref := domain.PersistedRef(7)

	var d DragController
	d.StartSessionDrag(ref, "10:00:00", Pointer{X: 650}, rect)
	require.True(t, d.Active())

	got, ok := d.Session()
	require.True(t, ok)
	assert.Equal(t, ref, got)
	_, ok = d.Movie()
	assert.False(t, ok)

	t.Run("shifts by displacement, not absolute position", func(t *testing.T) {
		clock, err := d.CandidateTime(Pointer{X: 710})
		require.NoError(t, err)
		assert.Equal(t, "11:00:00", clock)

		clock, err = d.CandidateTime(Pointer{X: 620})
		require.NoError(t, err)
		assert.Equal(t, "09:30:00", clock)
	})

	t.Run("wraps within the day", func(t *testing.T) {
		clock, err := d.CandidateTime(Pointer{X: 650 + 15*60})
		require.NoError(t, err)
		assert.Equal(t, "01:00:00", clock)

		clock, err = d.CandidateTime(Pointer{X: 650 - 11*60})
		require.NoError(t, err)
		assert.Equal(t, "23:00:00", clock)
	})
}

func TestDragController_MovieDrag(t *testing.T) {
	rect := Rect{Left: 100, Width: 1440}

	var d DragController
	d.StartMovieDrag(3, rect)

	movieID, ok := d.Movie()
	require.True(t, ok)
	assert.Equal(t, int64(3), movieID)

	// Pointer at 600px into the element is minute 600.
	clock, err := d.CandidateTime(Pointer{X: 700})
	require.NoError(t, err)
	assert.Equal(t, "10:00:00", clock)
}

func TestDragController_End(t *testing.T) {
	var d DragController
	d.StartMovieDrag(3, Rect{Width: 1440})
	d.End()

	assert.False(t, d.Active())
	_, err := d.CandidateTime(Pointer{X: 100})
	assert.ErrorIs(t, err, ErrNoDrag)
}
