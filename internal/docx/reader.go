package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ExtractText pulls the plain text out of a DOCX file. Paragraph breaks
// become newlines; all other formatting is dropped.
func ExtractText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var docXML []byte
	for _, f := range reader.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document part: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document part: %w", err)
		}
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("not a docx file: word/document.xml missing")
	}

	return extractParagraphs(docXML)
}

func extractParagraphs(docXML []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(docXML))

	var (
		out    strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	return strings.TrimSpace(out.String()), nil
}
