package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/stats"
	"github.com/feelio/feelio-backend/internal/theme"
)

func TestBuild_Geometry(t *testing.T) {
	l := Build(nil, 100)

	assert.Equal(t, Point{X: 50, Y: 50}, l.Center)
	assert.InDelta(t, 30, l.Radius, 1e-9)
	assert.InDelta(t, 25, l.InnerRadius, 1e-9)
}

func TestBuild_EmptyMonth(t *testing.T) {
	b := stats.Aggregate(domain.MonthMoods{})
	l := Build(b.Percentages(), 200)

	assert.Equal(t, ModeEmpty, l.Mode)
	assert.Empty(t, l.Wedges)
	assert.Empty(t, l.Fill)
}

func TestBuild_SingleEmotion(t *testing.T) {
	b := stats.Aggregate(domain.MonthMoods{5: "Happy"})
	l := Build(b.Percentages(), 200)

	assert.Equal(t, ModeFull, l.Mode)
	assert.Equal(t, domain.Happy.Color(), l.Fill)
	assert.Empty(t, l.Wedges)
}

func TestBuild_Segmented(t *testing.T) {
	b := stats.Aggregate(domain.MonthMoods{1: "Sad", 2: "Happy", 3: "Happy"})
	l := Build(b.Percentages(), 100)

	require.Equal(t, ModeSegmented, l.Mode)
	require.Len(t, l.Wedges, 2)

	first, second := l.Wedges[0], l.Wedges[1]
	assert.Equal(t, domain.Happy, first.Emotion)
	assert.Equal(t, domain.Sad, second.Emotion)

	assert.InDelta(t, -90, first.StartAngle, 1e-9)
	assert.InDelta(t, 241.2, first.Sweep, 1e-9)
	assert.True(t, first.LargeArc)
	assert.InDelta(t, 50, first.Start.X, 1e-9)
	assert.InDelta(t, 20, first.Start.Y, 1e-9)
	assert.True(t, strings.HasPrefix(first.Path, "M 50 50 L 50 20 A 30 30 0 1 1 "), first.Path)
	assert.True(t, strings.HasSuffix(first.Path, " Z"))

	assert.InDelta(t, first.StartAngle+first.Sweep, second.StartAngle, 1e-9)
	assert.InDelta(t, 118.8, second.Sweep, 1e-9)
	assert.False(t, second.LargeArc)
	assert.InDelta(t, first.End.X, second.Start.X, 1e-9)
	assert.InDelta(t, first.End.Y, second.Start.Y, 1e-9)

	// the ring closes back at the top
	assert.InDelta(t, 50, second.End.X, 1e-6)
	assert.InDelta(t, 20, second.End.Y, 1e-6)
}

func TestBuild_TiesKeepPaletteOrder(t *testing.T) {
	l := Build(map[domain.Emotion]int{
		domain.Sad:   33,
		domain.Calm:  33,
		domain.Happy: 33,
	}, 100)

	require.Len(t, l.Wedges, 3)
	assert.Equal(t, domain.Happy, l.Wedges[0].Emotion)
	assert.Equal(t, domain.Calm, l.Wedges[1].Emotion)
	assert.Equal(t, domain.Sad, l.Wedges[2].Emotion)
}

func TestBuild_DescendingOrder(t *testing.T) {
	l := Build(map[domain.Emotion]int{
		domain.Happy: 10,
		domain.Angry: 60,
		domain.Calm:  30,
	}, 100)

	require.Len(t, l.Wedges, 3)
	assert.Equal(t, []domain.Emotion{domain.Angry, domain.Calm, domain.Happy},
		[]domain.Emotion{l.Wedges[0].Emotion, l.Wedges[1].Emotion, l.Wedges[2].Emotion})
}

func TestBuild_ExactHalfIsNotLargeArc(t *testing.T) {
	l := Build(map[domain.Emotion]int{domain.Happy: 50, domain.Sad: 50}, 100)

	require.Len(t, l.Wedges, 2)
	assert.False(t, l.Wedges[0].LargeArc)
	assert.False(t, l.Wedges[1].LargeArc)
}

func TestRenderSVG(t *testing.T) {
	t.Run("empty ring uses theme empty state", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderSVG(&buf, Build(nil, 100), theme.Dark))

		out := buf.String()
		assert.Contains(t, out, `fill="`+theme.Dark.EmptyState+`"`)
		assert.Contains(t, out, `r="25" fill="`+theme.Dark.Background+`"`)
		assert.NotContains(t, out, "<path")
	})

	t.Run("segments become paths", func(t *testing.T) {
		var buf bytes.Buffer
		l := Build(map[domain.Emotion]int{domain.Happy: 75, domain.Sad: 25}, 100)
		require.NoError(t, RenderSVG(&buf, l, theme.Light))

		out := buf.String()
		assert.Equal(t, 2, strings.Count(out, "<path"))
		assert.Contains(t, out, `data-emotion="Happy"`)
		assert.True(t, strings.HasPrefix(out, "<svg"))
		assert.True(t, strings.HasSuffix(out, "</svg>"))
	})
}
