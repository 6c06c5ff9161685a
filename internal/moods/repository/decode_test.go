package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

func TestDecodeMonth(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.MonthMoods
	}{
		{"null", `null`, domain.MonthMoods{}},
		{"empty", ``, domain.MonthMoods{}},
		{"object", `{"01":"Happy","15":"Sad"}`, domain.MonthMoods{1: "Happy", 15: "Sad"}},
		{"array", `[null,"Calm",null,"Angry"]`, domain.MonthMoods{1: "Calm", 3: "Angry"}},
		{"skips junk", `{"x":"Happy","02":42,"40":"Sad","03":"Calm"}`, domain.MonthMoods{3: "Calm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMonth(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMonth_Invalid(t *testing.T) {
	_, err := DecodeMonth(json.RawMessage(`"Happy"`))
	assert.Error(t, err)
}

func TestDecodeYear(t *testing.T) {
	raw := `{"01":{"05":"Happy"},"02":[null,"Sad"],"03":{}}`
	got, err := DecodeYear(json.RawMessage(raw))
	require.NoError(t, err)

	assert.Len(t, got, 2)
	e, ok := got.Get(time.January, 5)
	assert.True(t, ok)
	assert.Equal(t, domain.Happy, e)
	e, ok = got.Get(time.February, 1)
	assert.True(t, ok)
	assert.Equal(t, domain.Sad, e)
}
