package knowledge

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the plain text of every page in the file.
func ExtractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}
	return buf.String(), nil
}

// LoadPDF extracts and chunks a PDF into research passages.
func LoadPDF(path, category, source string) ([]Passage, error) {
	text, err := ExtractPDFText(path)
	if err != nil {
		return nil, err
	}
	return PassagesFromText(text, category, source, path), nil
}
