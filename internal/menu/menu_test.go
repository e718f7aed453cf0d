package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-fit/internal/catalog"
)

func TestView_SelectDay(t *testing.T) {
	v := NewView(catalog.Week())
	assert.Equal(t, 0, v.DayIndex())
	assert.Equal(t, "Lunes", v.Day().Day)

	for i := 0; i < catalog.DaysInWeek; i++ {
		require.NoError(t, v.SelectDay(i))
		assert.Equal(t, i, v.DayIndex())
	}

	require.NoError(t, v.SelectDay(3))
	for _, bad := range []int{-1, 7, 42} {
		err := v.SelectDay(bad)
		assert.ErrorIs(t, err, ErrDayOutOfRange)
		assert.Equal(t, 3, v.DayIndex())
	}
}

func TestView_NextPrevWrap(t *testing.T) {
	v := NewView(catalog.Week())
	v.PrevDay()
	assert.Equal(t, 6, v.DayIndex())
	v.NextDay()
	assert.Equal(t, 0, v.DayIndex())
	v.NextDay()
	assert.Equal(t, "Martes", v.Day().Day)
}

func TestView_TotalsFollowSelectedDay(t *testing.T) {
	v := NewView(catalog.Week())
	monday := v.Totals()
	require.NoError(t, v.SelectDay(1))
	assert.NotEqual(t, monday, v.Totals())
	assert.Equal(t, v.Day().Totals(), v.Totals())
}

func TestView_OpenClose(t *testing.T) {
	v := NewView(catalog.Week())
	_, ok := v.Selected()
	assert.False(t, ok)

	m, err := v.Open(catalog.Lunch)
	require.NoError(t, err)
	assert.Equal(t, "l1", m.ID)

	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, m.Name, sel.Name)
	assert.Len(t, sel.Steps, 4)

	v.Close()
	_, ok = v.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, v.DayIndex())

	_, err = v.Open("snack")
	assert.Error(t, err)
}
