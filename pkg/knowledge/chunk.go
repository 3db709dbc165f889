package knowledge

import (
	"fmt"
	"strings"
)

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// ChunkWords collapses whitespace and splits text into windows of size words
// that overlap by overlap words. The final windows may be shorter.
func ChunkWords(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || size <= 0 {
		return nil
	}
	step := size - overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// PassagesFromText chunks a document into research passages keyed pdf_<category>_<i>.
func PassagesFromText(text, category, source, pdfPath string) []Passage {
	chunks := ChunkWords(text, DefaultChunkSize, DefaultChunkOverlap)
	passages := make([]Passage, len(chunks))
	for i, chunk := range chunks {
		passages[i] = Passage{
			Key:      fmt.Sprintf("pdf_%s_%d", category, i),
			Content:  chunk,
			Category: category,
			Type:     TypeResearch,
			Source:   source,
			PdfPath:  pdfPath,
		}
	}
	return passages
}
