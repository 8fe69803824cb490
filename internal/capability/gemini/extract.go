package gemini

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

var (
	xmlTag     = regexp.MustCompile(`<[^>]+>`)
	whitespace = regexp.MustCompile(`[ \t]+`)
)

// ExtractText returns the plain text of a resume document. The type is taken
// from the content type, falling back to the file extension.
func ExtractText(file capability.ResumeFile) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(strings.SplitN(file.ContentType, ";", 2)[0]))
	if kind == "" || kind == "application/octet-stream" {
		kind = kindByExtension(file.Name)
	}

	switch kind {
	case mimeText:
		return string(file.Data), nil
	case mimePDF:
		return extractPDFText(file.Data)
	case mimeDOCX:
		return extractDocxText(file.Data)
	default:
		return "", fmt.Errorf("unsupported file type %q for %s", kind, file.Name)
	}
}

func kindByExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".txt", ".md":
		return mimeText
	default:
		return ""
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	// The editable content is the raw document XML; paragraphs become lines.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTag.ReplaceAllString(content, "")
	content = whitespace.ReplaceAllString(content, " ")

	return strings.TrimSpace(content), nil
}
