// Package docx renders essays to DOCX. The file is built directly as an
// OpenXML zip container; no intermediate document model.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// FeedbackItem is one outstanding editorial note appended after the essay.
type FeedbackItem struct {
	Type       string
	Original   string
	Suggestion string
	Rationale  string
}

// Document is the export input: a title, body paragraphs, and an optional
// editorial-feedback section.
type Document struct {
	Title      string
	Paragraphs []string
	Feedback   []FeedbackItem
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// Build produces the DOCX bytes.
func Build(doc Document) ([]byte, error) {
	body, err := buildBody(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	entries := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", body},
	}

	for _, entry := range entries {
		f, err := w.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", entry.name, err)
		}
		if _, err := f.Write([]byte(entry.content)); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", entry.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}

	return buf.Bytes(), nil
}

func buildBody(doc Document) (string, error) {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	// Title: centered, bold, larger size.
	if doc.Title != "" {
		b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
		b.WriteString(`<w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr>`)
		if err := writeText(&b, doc.Title); err != nil {
			return "", err
		}
		b.WriteString(`</w:r></w:p>`)
	}

	// Body: justified paragraphs.
	for _, para := range doc.Paragraphs {
		b.WriteString(`<w:p><w:pPr><w:jc w:val="both"/></w:pPr><w:r>`)
		if err := writeText(&b, para); err != nil {
			return "", err
		}
		b.WriteString(`</w:r></w:p>`)
	}

	if len(doc.Feedback) > 0 {
		b.WriteString(`<w:p><w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr>`)
		if err := writeText(&b, "Editorial Feedback"); err != nil {
			return "", err
		}
		b.WriteString(`</w:r></w:p>`)

		for i, item := range doc.Feedback {
			line := fmt.Sprintf("%d. [%s] \"%s\" -> \"%s\"", i+1, item.Type, item.Original, item.Suggestion)
			b.WriteString(`<w:p><w:r>`)
			if err := writeText(&b, line); err != nil {
				return "", err
			}
			b.WriteString(`</w:r></w:p>`)

			if item.Rationale != "" {
				b.WriteString(`<w:p><w:pPr><w:jc w:val="both"/></w:pPr><w:r><w:rPr><w:i/></w:rPr>`)
				if err := writeText(&b, item.Rationale); err != nil {
					return "", err
				}
				b.WriteString(`</w:r></w:p>`)
			}
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String(), nil
}

// writeText emits one escaped w:t run, preserving significant whitespace.
func writeText(b *strings.Builder, text string) error {
	b.WriteString(`<w:t xml:space="preserve">`)

	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return fmt.Errorf("escape text: %w", err)
	}
	b.Write(escaped.Bytes())

	b.WriteString(`</w:t>`)
	return nil
}
