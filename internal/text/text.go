// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package text scrapes text runs out of a WordprocessingML document part.
// Only w:t elements are read; paragraphs, tabs, and breaks contribute
// nothing, so adjacent runs join without separators.
package text

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// WordNamespace is the WordprocessingML main namespace.
const WordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ErrMalformedXML wraps parser failures on the document part.
var ErrMalformedXML = errors.New("malformed document XML")

// runExpr matches every element with local name "t" below the document
// root. The namespace is checked per node so that t elements from other
// vocabularies (drawingml a:t, math m:t) are ignored.
var runExpr = xpath.MustCompile(`//*[local-name()='t']`)

// Parse reads an XML document into a queryable tree. The document must
// have exactly one root element and no character data outside it.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	if err := checkTopLevel(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	return doc, nil
}

// checkTopLevel rejects content the parser tolerates at the top level.
func checkTopLevel(doc *xmlquery.Node) error {
	roots := 0
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case xmlquery.ElementNode:
			roots++
			if roots > 1 {
				return fmt.Errorf("junk after document element <%s>", n.Data)
			}
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(n.Data) != "" {
				return errors.New("character data outside document element")
			}
		}
	}
	if roots == 0 {
		return errors.New("no document element")
	}
	return nil
}

// Runs returns the text of every non-empty w:t element in document order.
func Runs(doc *xmlquery.Node) []string {
	var runs []string
	for _, n := range xmlquery.QuerySelectorAll(doc, runExpr) {
		if n.NamespaceURI != WordNamespace {
			continue
		}
		if s := n.InnerText(); s != "" {
			runs = append(runs, s)
		}
	}
	return runs
}

// Result is the scraped text and the number of runs it came from.
type Result struct {
	Text string
	Runs int
}

// Extract parses r and concatenates its text runs.
func Extract(r io.Reader) (Result, error) {
	doc, err := Parse(r)
	if err != nil {
		return Result{}, err
	}
	runs := Runs(doc)
	return Result{Text: strings.Join(runs, ""), Runs: len(runs)}, nil
}
