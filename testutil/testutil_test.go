package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/bikestats/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	pts := rng.UniformPoints(64, core.Point{X: -1, Y: 10}, core.Point{X: 1, Y: 20})

	require.Len(t, pts, 64)
	for _, p := range pts {
		assert.GreaterOrEqual(t, p.X, -1.0)
		assert.Less(t, p.X, 1.0)
		assert.GreaterOrEqual(t, p.Y, 10.0)
		assert.Less(t, p.Y, 20.0)
	}
}

func TestGaussianBlobs(t *testing.T) {
	rng := NewRNG(4711)
	centers := []core.Point{{X: 0, Y: 0}, {X: 100, Y: 100}}

	pts, labels := rng.GaussianBlobs(centers, 10, 0.5)

	require.Len(t, pts, 20)
	require.Len(t, labels, 20)
	for i, p := range pts {
		c := centers[labels[i]]
		assert.InDelta(t, c.X, p.X, 5)
		assert.InDelta(t, c.Y, p.Y, 5)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	p1 := rng.Perm(10)

	rng.Reset()
	p2 := rng.Perm(10)

	assert.Equal(t, p1, p2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestDayCSV(t *testing.T) {
	rng := NewRNG(1)

	lines := strings.Split(strings.TrimSpace(rng.DayCSV(3)), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, DayHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,2011-01-01,1,0,1,"))
	assert.True(t, strings.HasPrefix(lines[3], "3,2011-01-03,1,0,1,"))
}

func TestHourCSV(t *testing.T) {
	rng := NewRNG(1)

	lines := strings.Split(strings.TrimSpace(rng.HourCSV(2)), "\n")

	require.Len(t, lines, 1+48)
	assert.Equal(t, HourHeader, lines[0])
	assert.Len(t, strings.Split(lines[1], ","), len(strings.Split(HourHeader, ",")))
}

func TestSeasonOf(t *testing.T) {
	assert.Equal(t, 1, SeasonOf(time.December))
	assert.Equal(t, 1, SeasonOf(time.February))
	assert.Equal(t, 2, SeasonOf(time.March))
	assert.Equal(t, 3, SeasonOf(time.July))
	assert.Equal(t, 4, SeasonOf(time.November))
}
