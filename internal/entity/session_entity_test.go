package entity

import (
	"testing"

	"mindly-be/pkg/wellness"

	"github.com/stretchr/testify/assert"
)

func TestRecentHistory(t *testing.T) {
	s := &Session{History: []string{"u1", "b1", "u2", "b2", "u3", "b3", "u4", "b4"}}

	assert.Equal(t, []string{"u2", "b2", "u3", "b3", "u4", "b4"}, s.RecentHistory(DefaultHistoryWindow))
	assert.Equal(t, []string{"b4"}, s.RecentHistory(1))
	assert.Equal(t, s.History, s.RecentHistory(100))
	assert.Empty(t, (&Session{}).RecentHistory(6))

	window := s.RecentHistory(2)
	window[0] = "changed"
	assert.Equal(t, "u4", s.History[6])
}

func TestSessionMetrics(t *testing.T) {
	s := &Session{}
	assert.Empty(t, s.LatestMetrics())
	assert.Empty(t, s.AverageMetrics())

	s.MetricsLog = append(s.MetricsLog, MetricsEntry{Index: 0, Metrics: wellness.Neutral(), Message: "hi"})
	assert.Equal(t, s.LatestMetrics(), s.AverageMetrics())
}
