package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		responses map[string]float64
		want      string
	}{
		{
			name:      "depression included, anxiety below threshold",
			responses: map[string]float64{"phq1": 2, "phq2": 3, "ghq1": 1},
			want:      "Depression concerns (PHQ: 2.5/3)",
		},
		{
			name:      "low academic motivation is inverted",
			responses: map[string]float64{"acad1": 1, "acad2": 1},
			want:      "Low academic motivation (Score: 1.0/4)",
		},
		{
			name:      "high academic score is not a concern",
			responses: map[string]float64{"acad1": 4, "acad2": 3},
			want:      NoConcerns,
		},
		{
			name:      "empty responses",
			responses: map[string]float64{},
			want:      NoConcerns,
		},
		{
			name:      "unknown prefixes are ignored",
			responses: map[string]float64{"sleep1": 4, "PHQ1": 3},
			want:      NoConcerns,
		},
		{
			name: "all categories in fixed order",
			responses: map[string]float64{
				"acad1": 2, "fin1": 3, "ucla1": 4, "pss1": 2, "ghq1": 3, "phq1": 2,
			},
			want: "Depression concerns (PHQ: 2.0/3) | Anxiety concerns (GHQ: 3.0/3) | Stress concerns (PSS: 2.0/3) | " +
				"Social isolation concerns (UCLA: 4.0/4) | Financial stress concerns (Score: 3.0/4) | Low academic motivation (Score: 2.0/4)",
		},
		{
			name:      "isolation and financial need a mean of three",
			responses: map[string]float64{"ucla1": 2, "ucla2": 3, "fin1": 3, "fin2": 4, "fin3": 4},
			want:      "Financial stress concerns (Score: 3.7/4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.responses))
		})
	}
}

func TestSummarizeIsDeterministic(t *testing.T) {
	responses := map[string]float64{
		"phq1": 0.1, "phq2": 0.2, "phq3": 0.3, "phq4": 2.9, "phq5": 3,
		"ghq1": 2, "ghq2": 2.2, "ghq3": 1.9,
	}
	want := Summarize(responses)
	for i := 0; i < 50; i++ {
		copied := make(map[string]float64, len(responses))
		for k, v := range responses {
			copied[k] = v
		}
		require.Equal(t, want, Summarize(copied))
	}
}

func TestCategoryOf(t *testing.T) {
	cat, ok := CategoryOf("ucla3")
	require.True(t, ok)
	assert.Equal(t, CategoryIsolation, cat)
	assert.Equal(t, "isolation", cat.String())

	_, ok = CategoryOf("Fin1")
	assert.False(t, ok)
}

func TestBreakdown(t *testing.T) {
	scores := Breakdown(map[string]float64{"pss1": 1, "pss2": 2, "acad1": 3, "x": 9})
	require.Len(t, scores, 2)

	assert.Equal(t, CategoryStress, scores[0].Rule.Category)
	assert.InDelta(t, 1.5, scores[0].Mean, 1e-9)
	assert.Equal(t, 2, scores[0].Items)
	assert.False(t, scores[0].Included)
	assert.Empty(t, scores[0].Label)

	assert.Equal(t, CategoryAcademic, scores[1].Rule.Category)
	assert.False(t, scores[1].Included)
}
