package wellness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Metric keys reported for every chat turn, in display order.
const (
	KeyStress           = "stress"
	KeyAnxiety          = "anxiety"
	KeyLoneliness       = "loneliness"
	KeyMotivation       = "motivation"
	KeyFinancialBurden  = "financial_burden"
	KeyAcademicPressure = "academic_pressure"
)

const (
	MinScore     = 0.0
	MaxScore     = 10.0
	NeutralScore = 5.0
)

// Keys lists the six fixed metric keys.
var Keys = []string{
	KeyStress,
	KeyAnxiety,
	KeyLoneliness,
	KeyMotivation,
	KeyFinancialBurden,
	KeyAcademicPressure,
}

var ErrMalformedMetrics = errors.New("malformed metrics payload")

// Metrics maps a metric key to a self-reported score in [0,10].
type Metrics map[string]float64

// Neutral is the fallback used when extraction fails.
func Neutral() Metrics {
	m := make(Metrics, len(Keys))
	for _, k := range Keys {
		m[k] = NeutralScore
	}
	return m
}

// Clone returns an independent copy.
func (m Metrics) Clone() Metrics {
	out := make(Metrics, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Above returns the distress keys scoring at or above threshold.
// Motivation is skipped: a high score there is a good sign.
func (m Metrics) Above(threshold float64) []string {
	var keys []string
	for _, k := range Keys {
		if k == KeyMotivation {
			continue
		}
		if v, ok := m[k]; ok && v >= threshold {
			keys = append(keys, k)
		}
	}
	return keys
}

// ParseMetrics decodes an LLM metrics answer. The JSON object may be wrapped
// in a fenced code block or surrounded by prose.
func ParseMetrics(raw string) (Metrics, error) {
	payload := UnwrapJSON(raw)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedMetrics)
	}

	var decoded map[string]float64
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetrics, err)
	}

	return Normalize(decoded)
}

// Normalize keeps exactly the six metric keys, clamped to [0,10]. Extra keys
// are dropped; a missing key is an error.
func Normalize(raw map[string]float64) (Metrics, error) {
	m := make(Metrics, len(Keys))
	for _, k := range Keys {
		v, ok := raw[k]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedMetrics, k)
		}
		m[k] = clamp(v)
	}
	return m, nil
}

// UnwrapJSON strips optional ```json fences and any text around the outermost object.
func UnwrapJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if start := strings.Index(s, "```"); start >= 0 {
		body := s[start+3:]
		// drop the language tag line, e.g. "json\n"
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.Contains(body[:nl], "{") {
			body = body[nl+1:]
		}
		if end := strings.Index(body, "```"); end >= 0 {
			body = body[:end]
		}
		s = strings.TrimSpace(body)
	}

	open := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if open < 0 || end < open {
		return s
	}
	return s[open : end+1]
}

func clamp(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
