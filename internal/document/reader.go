package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for files that are neither DOCX, PDF nor
// plain text.
var ErrUnsupportedFormat = errors.New("unsupported file format (expected .docx, .doc, .pdf or .txt)")

// ErrEmptyDocument is returned when a file parses but contains no text.
var ErrEmptyDocument = errors.New("no text content found in document")

// File is a resolved document with its extracted plain text.
type File struct {
	Path string
	Text string
}

// Name returns the base file name without extension, used as the candidate
// identifier fallback when no name can be extracted from the text itself.
func (f File) Name() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Supported reports whether the file extension is one the reader can handle.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx", ".doc", ".pdf", ".txt":
		return true
	default:
		return false
	}
}

// Read extracts plain text from the file, dispatching on its extension.
func Read(path string) (File, error) {
	if _, err := os.Stat(path); err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}

	var text string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx", ".doc":
		text, err = extractDocx(path)
	case ".pdf":
		text, err = extractPDF(path)
	case ".txt":
		text, err = readPlain(path)
	default:
		return File{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	if err != nil {
		return File{}, err
	}

	text = normalize(text)
	if text == "" {
		return File{}, fmt.Errorf("%s: %w", path, ErrEmptyDocument)
	}

	return File{Path: path, Text: text}, nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the whole resume.
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractDocx(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("open docx %s: %w", path, err)
	}
	defer doc.Close()

	// GetContent returns the raw word/document.xml payload. Paragraph ends
	// become newlines before the markup is stripped.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagPattern.ReplaceAllString(content, "")

	return content, nil
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// normalize trims every line and drops empty ones, keeping prompts compact.
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
