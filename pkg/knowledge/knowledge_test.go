package knowledge

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func TestChunkWords(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
		want    []string
	}{
		{name: "empty", text: "  \n\t ", size: 3, overlap: 1, want: nil},
		{name: "collapses whitespace", text: "a \n\n b\tc", size: 5, overlap: 1, want: []string{"a b c"}},
		{name: "overlapping windows", text: "a b c d e", size: 3, overlap: 1, want: []string{"a b c", "c d e", "e"}},
		{name: "overlap not smaller than size", text: "a b c d", size: 2, overlap: 2, want: []string{"a b", "c d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkWords(tt.text, tt.size, tt.overlap))
		})
	}
}

func TestChunkWords_DefaultSizes(t *testing.T) {
	chunks := ChunkWords(words(1000), DefaultChunkSize, DefaultChunkOverlap)
	require.Len(t, chunks, 3)
	assert.Len(t, strings.Fields(chunks[0]), 500)
	assert.True(t, strings.HasPrefix(chunks[1], "w450 "))
	assert.Len(t, strings.Fields(chunks[2]), 100)
}

func TestPassagesFromText(t *testing.T) {
	passages := PassagesFromText(words(600), "stress", "research_paper", "data/stress.pdf")
	require.Len(t, passages, 2)
	assert.Equal(t, "pdf_stress_0", passages[0].Key)
	assert.Equal(t, "pdf_stress_1", passages[1].Key)
	assert.Equal(t, TypeResearch, passages[1].Type)
	assert.Equal(t, "data/stress.pdf", passages[1].PdfPath)
}

func TestDefaults(t *testing.T) {
	passages := Defaults()
	require.Len(t, passages, 15)

	assert.Equal(t, "doc_0", passages[0].Key)
	assert.Equal(t, "stress", passages[0].Category)
	assert.Equal(t, TypeTechnique, passages[0].Type)

	assert.Equal(t, "doc_11", passages[11].Key)
	assert.Equal(t, "crisis", passages[11].Category)
	assert.Equal(t, TypeResource, passages[11].Type)

	assert.Equal(t, "academic", passages[12].Category)
	assert.Equal(t, TypeTechnique, passages[12].Type)

	assert.Equal(t, "self_care", passages[14].Category)
	for _, p := range passages {
		assert.NotEmpty(t, p.Content)
		assert.Equal(t, SourceBuiltin, p.Source)
	}
}

func TestLoadPDF_MissingFile(t *testing.T) {
	_, err := LoadPDF("does/not/exist.pdf", "stress", "x")
	assert.Error(t, err)
}
