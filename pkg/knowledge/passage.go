// Package knowledge holds the built-in coping-strategy library and the text
// preparation used to ingest research PDFs.
package knowledge

// Passage is a unit of retrievable text before it is embedded.
type Passage struct {
	Key      string
	Content  string
	Category string
	Type     string
	Source   string
	PdfPath  string
}

const (
	TypeTechnique = "technique"
	TypeStrategy  = "strategy"
	TypeHealth    = "health"
	TypeResource  = "resource"
	TypePractice  = "practice"
	TypeResearch  = "research"
)

const SourceBuiltin = "builtin"
