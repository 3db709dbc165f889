package knowledge

// ManifestEntry describes one PDF to ingest.
type ManifestEntry struct {
	Path     string `json:"path"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

// DefaultManifest lists the research PDFs shipped under data/.
func DefaultManifest() []ManifestEntry {
	return []ManifestEntry{
		{Path: "data/stress_management.pdf", Category: "stress", Source: "research_paper"},
		{Path: "data/anxiety_guide.pdf", Category: "anxiety", Source: "clinical_guide"},
		{Path: "data/student_mental_health.pdf", Category: "academic", Source: "university_research"},
		{Path: "data/sleep_hygiene.pdf", Category: "sleep", Source: "health_guide"},
		{Path: "data/nutrition_mental_health.pdf", Category: "nutrition", Source: "research_paper"},
	}
}

// LoadReport summarises a batch PDF load.
type LoadReport struct {
	Successful  int
	Failed      int
	TotalChunks int
	Errors      map[string]error
}
