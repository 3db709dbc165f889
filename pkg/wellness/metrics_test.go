package wellness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeutral(t *testing.T) {
	m := Neutral()
	require.Len(t, m, 6)
	for _, k := range Keys {
		assert.Equal(t, 5.0, m[k], k)
	}
}

func TestParseMetrics(t *testing.T) {
	full := `{"stress":7,"anxiety":6.5,"loneliness":2,"motivation":4,"financial_burden":3,"academic_pressure":8}`

	tests := []struct {
		name    string
		raw     string
		want    Metrics
		wantErr bool
	}{
		{
			name: "plain object",
			raw:  full,
			want: Metrics{"stress": 7, "anxiety": 6.5, "loneliness": 2, "motivation": 4, "financial_burden": 3, "academic_pressure": 8},
		},
		{
			name: "json fence",
			raw:  "```json\n" + full + "\n```",
			want: Metrics{"stress": 7, "anxiety": 6.5, "loneliness": 2, "motivation": 4, "financial_burden": 3, "academic_pressure": 8},
		},
		{
			name: "bare fence with prose",
			raw:  "Here you go:\n```\n" + full + "\n```\nTake care!",
			want: Metrics{"stress": 7, "anxiety": 6.5, "loneliness": 2, "motivation": 4, "financial_burden": 3, "academic_pressure": 8},
		},
		{
			name: "out of range values are clamped, unknown keys dropped",
			raw:  `{"stress":12,"anxiety":-1,"loneliness":2,"motivation":4,"financial_burden":3,"academic_pressure":8,"joy":9}`,
			want: Metrics{"stress": 10, "anxiety": 0, "loneliness": 2, "motivation": 4, "financial_burden": 3, "academic_pressure": 8},
		},
		{name: "missing key", raw: `{"stress":1}`, wantErr: true},
		{name: "not json", raw: "I could not determine the metrics.", wantErr: true},
		{name: "string values", raw: `{"stress":"high","anxiety":1,"loneliness":1,"motivation":1,"financial_burden":1,"academic_pressure":1}`, wantErr: true},
		{name: "empty", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetrics(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedMetrics)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := map[string]float64{"mood": 7}
	for _, k := range Keys {
		raw[k] = 4
	}
	raw[KeyStress] = 42
	raw[KeyLoneliness] = -3

	m, err := Normalize(raw)
	require.NoError(t, err)
	assert.Len(t, m, len(Keys))
	assert.NotContains(t, m, "mood")
	assert.Equal(t, 10.0, m[KeyStress])
	assert.Equal(t, 0.0, m[KeyLoneliness])
	assert.Equal(t, 4.0, m[KeyAnxiety])

	delete(raw, KeyAnxiety)
	_, err = Normalize(raw)
	assert.ErrorIs(t, err, ErrMalformedMetrics)
}

func TestMetricsAbove(t *testing.T) {
	m := Metrics{"stress": 9, "anxiety": 3, "loneliness": 9.5, "motivation": 10, "financial_burden": 2, "academic_pressure": 1}
	assert.Equal(t, []string{KeyStress, KeyLoneliness}, m.Above(9))
	assert.Empty(t, Neutral().Above(9))
}

func TestLatestAndAverage(t *testing.T) {
	assert.Empty(t, Latest(nil))
	assert.Empty(t, Average(nil))

	first := Metrics{"stress": 8, "anxiety": 4, "loneliness": 2, "motivation": 6, "financial_burden": 1, "academic_pressure": 9}
	log := []Metrics{first}

	// a single entry averages to itself
	assert.Equal(t, Latest(log), Average(log))

	second := Metrics{"stress": 2, "anxiety": 6, "loneliness": 4, "motivation": 6, "financial_burden": 3, "academic_pressure": 5}
	prev := Average(log)
	log = append(log, second)
	avg := Average(log)
	for _, k := range Keys {
		want := (prev[k]*1 + second[k]) / 2
		assert.InDelta(t, want, avg[k], 1e-9, k)
	}
	assert.Equal(t, second, Latest(log))

	third := Metrics{"stress": 5, "anxiety": 5, "loneliness": 5, "motivation": 5, "financial_burden": 5, "academic_pressure": 5}
	prev = Average(log)
	log = append(log, third)
	avg = Average(log)
	for _, k := range Keys {
		want := (prev[k]*2 + third[k]) / 3
		assert.InDelta(t, want, avg[k], 1e-9, k)
	}
}

func TestAverageUsesLatestKeys(t *testing.T) {
	log := []Metrics{
		{"stress": 4, "anxiety": 8},
		{"stress": 6},
	}
	assert.Equal(t, Metrics{"stress": 5}, Average(log))
}

func TestLatestReturnsCopy(t *testing.T) {
	log := []Metrics{{"stress": 1}}
	got := Latest(log)
	got["stress"] = 9
	assert.Equal(t, 1.0, log[0]["stress"])
}
