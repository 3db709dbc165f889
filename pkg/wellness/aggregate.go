package wellness

// Latest returns a copy of the last metrics in log, or an empty mapping.
func Latest(log []Metrics) Metrics {
	if len(log) == 0 {
		return Metrics{}
	}
	return log[len(log)-1].Clone()
}

// Average computes, for every key of the latest entry, the arithmetic mean
// across the whole log. Keys missing from older entries count as absent
// rather than zero.
func Average(log []Metrics) Metrics {
	if len(log) == 0 {
		return Metrics{}
	}

	latest := log[len(log)-1]
	avg := make(Metrics, len(latest))
	for key := range latest {
		var sum float64
		var n int
		for _, m := range log {
			if v, ok := m[key]; ok {
				sum += v
				n++
			}
		}
		avg[key] = sum / float64(n)
	}
	return avg
}
