package dataset

import (
	"strings"
	"testing"

	"github.com/hupe1980/bikestats/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayTable(t *testing.T) {
	days, err := ReadDays(strings.NewReader(sampleDays))
	require.NoError(t, err)

	tbl := NewDayTable(days)
	assert.Equal(t, 3, tbl.Len())
	assert.NotContains(t, tbl.Columns(), ColDate)
	assert.NotContains(t, tbl.Columns(), ColHour)
	assert.Equal(t, ColInstant, tbl.Columns()[0])
	assert.Equal(t, ColCount, tbl.Columns()[len(tbl.Columns())-1])

	assert.Equal(t, []float64{985, 801, 1349}, tbl.Column(ColCount))
	assert.Nil(t, tbl.Column("nope"))
	assert.Len(t, tbl.Dates(), 3)
}

func TestHourTable(t *testing.T) {
	hours := []Hour{
		{Day: Day{Instant: 1, Season: 1, Count: 16}, Hour: 0},
		{Day: Day{Instant: 2, Season: 1, Count: 40}, Hour: 1},
	}
	tbl := NewHourTable(hours)
	assert.True(t, tbl.Has(ColHour))
	assert.Equal(t, []float64{0, 1}, tbl.Column(ColHour))
	assert.Equal(t, []float64{16, 40}, tbl.Column(ColCount))
}

func TestTable_Points(t *testing.T) {
	days, err := ReadDays(strings.NewReader(sampleDays))
	require.NoError(t, err)
	tbl := NewDayTable(days)

	pts, err := tbl.Points(ColTemp, ColCount, nil)
	require.NoError(t, err)
	require.Len(t, pts, 3)
	assert.Equal(t, core.Point{X: 0.344167, Y: 985}, pts[0])

	pts, err = tbl.Points(ColTemp, ColCount, []core.RowID{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{X: 0.196364, Y: 1349}, {X: 0.344167, Y: 985}}, pts)

	_, err = tbl.Points("nope", ColCount, nil)
	var mc *ErrMissingColumn
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "nope", mc.Column)

	_, err = tbl.Points(ColTemp, ColCount, []core.RowID{3})
	assert.Error(t, err)
}

func TestTable_Subset(t *testing.T) {
	days, err := ReadDays(strings.NewReader(sampleDays))
	require.NoError(t, err)
	tbl := NewDayTable(days)

	sub, err := tbl.Subset([]core.RowID{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []float64{801, 1349}, sub.Column(ColCount))
	assert.Equal(t, days[1].Date, sub.Dates()[0])

	// The parent is untouched.
	assert.Equal(t, 3, tbl.Len())

	empty, err := tbl.Subset(nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}
