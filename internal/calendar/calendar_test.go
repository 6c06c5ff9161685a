package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

func TestBuild(t *testing.T) {
	moods := domain.YearMoods{
		time.March: {5: "Happy", 6: "Bored"},
		time.June:  {1: "Sad"},
	}
	today := domain.Date{Year: 2024, Month: time.June, Day: 15}

	y := Build(2024, moods, today, time.Sunday)
	require.Len(t, y.Months, 12)

	t.Run("leap february", func(t *testing.T) {
		assert.Len(t, y.Months[1].Days, 29)
	})

	t.Run("leading blanks follow the weekday of day one", func(t *testing.T) {
		// 2024-01-01 was a Monday.
		assert.Equal(t, 1, y.Months[0].Leading)
		assert.Equal(t, time.Monday, y.Months[0].Days[0].Weekday)

		monday := Build(2024, nil, today, time.Monday)
		assert.Equal(t, 0, monday.Months[0].Leading)
	})

	t.Run("moods are overlaid", func(t *testing.T) {
		march := y.Months[2]
		assert.Equal(t, domain.Happy, march.Days[4].Emotion)
		assert.Equal(t, domain.Happy.Color(), march.Days[4].Color)
		assert.Empty(t, march.Days[5].Emotion, "unknown labels are not shown")
		assert.Equal(t, 1, march.Recorded)
		assert.Equal(t, "2024-03-05", march.Days[4].Date)
	})

	t.Run("today and future flags", func(t *testing.T) {
		june := y.Months[5]
		assert.True(t, june.Days[14].Today)
		assert.False(t, june.Days[14].Future)
		assert.True(t, june.Days[15].Future)
		assert.False(t, june.Days[13].Future)
		assert.True(t, y.Months[11].Days[0].Future)
	})
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2022, 2023, 2024}, Years(2022, 2024))
	assert.Equal(t, []int{2024}, Years(0, 2024))
	assert.Equal(t, []int{2024}, Years(2030, 2024))
}
