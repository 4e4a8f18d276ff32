package docparse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

func parseDocx(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	for _, file := range archive.File {
		if file.Name != docxBody {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", docxBody, err)
		}
		defer rc.Close()
		return docxText(rc)
	}
	return "", fmt.Errorf("%s not found", docxBody)
}

// wordML is the WordprocessingML main namespace. Elements outside it, such
// as DrawingML a:p and a:t, are not document text.
const wordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

type docxParagraph struct {
	text strings.Builder
	list bool
}

// docxText walks WordprocessingML and renders paragraphs as blank-line
// separated blocks and numbered paragraphs as "- " items. Paragraphs nested
// in text boxes are emitted as their own blocks ahead of the paragraph that
// holds them.
func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out    strings.Builder
		paras  []*docxParagraph
		pPr    int
		inText bool
		inList bool
	)

	current := func() *docxParagraph {
		if len(paras) == 0 {
			return nil
		}
		return paras[len(paras)-1]
	}

	emit := func(p *docxParagraph) {
		if p.list {
			out.WriteString("- ")
			out.WriteString(p.text.String())
			out.WriteByte('\n')
			inList = true
			return
		}
		if inList {
			out.WriteByte('\n')
			inList = false
		}
		out.WriteString(p.text.String())
		out.WriteString("\n\n")
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", docxBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordML {
				continue
			}
			p := current()
			switch t.Name.Local {
			case "p":
				paras = append(paras, &docxParagraph{})
			case "pPr":
				pPr++
			case "numPr":
				if p != nil && pPr > 0 {
					p.list = true
				}
			case "t":
				inText = p != nil
			case "tab":
				// tab stop definitions live in pPr
				if p != nil && pPr == 0 {
					p.text.WriteByte(' ')
				}
			case "br", "cr":
				if p != nil {
					p.text.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordML {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "pPr":
				if pPr > 0 {
					pPr--
				}
			case "p":
				p := current()
				if p == nil {
					continue
				}
				paras = paras[:len(paras)-1]
				emit(p)
			}
		case xml.CharData:
			if p := current(); inText && p != nil {
				p.text.Write(t)
			}
		}
	}

	return tidy(out.String()), nil
}
