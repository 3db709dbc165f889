package entity

import "mindly-be/pkg/wellness"

// DefaultSessionID is used when a chat request carries no session id.
const DefaultSessionID = "default"

// DefaultHistoryWindow is the number of history entries (three exchanges)
// handed to the LLM collaborators.
const DefaultHistoryWindow = 6

// MetricsEntry is one immutable row of a session's metrics log.
type MetricsEntry struct {
	Index   int              `json:"index"`
	Metrics wellness.Metrics `json:"metrics"`
	Message string           `json:"message"`
}

// Session is a snapshot of a conversation. History alternates user and bot
// messages, starting with the user.
type Session struct {
	Id         string
	History    []string
	MetricsLog []MetricsEntry
}

// RecentHistory returns the last n history entries, oldest first.
func (s *Session) RecentHistory(n int) []string {
	if n <= 0 || len(s.History) == 0 {
		return []string{}
	}
	start := len(s.History) - n
	if start < 0 {
		start = 0
	}
	window := make([]string, len(s.History)-start)
	copy(window, s.History[start:])
	return window
}

func (s *Session) metricsSeries() []wellness.Metrics {
	series := make([]wellness.Metrics, len(s.MetricsLog))
	for i, e := range s.MetricsLog {
		series[i] = e.Metrics
	}
	return series
}

// LatestMetrics returns the metrics of the newest entry, or an empty mapping.
func (s *Session) LatestMetrics() wellness.Metrics {
	return wellness.Latest(s.metricsSeries())
}

// AverageMetrics returns the running mean over the metrics log.
func (s *Session) AverageMetrics() wellness.Metrics {
	return wellness.Average(s.metricsSeries())
}
