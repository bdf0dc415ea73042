// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docx-extract/internal/archive/archivetest"
)

const docOpen = `<w:document xmlns:w="` + WordNamespace + `"><w:body>`
const docClose = `</w:body></w:document>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		want     string
		wantRuns int
	}{
		{
			name:     "runs concatenate without separators",
			xml:      archivetest.DocumentXML("Hello", " ", "World"),
			want:     "Hello World",
			wantRuns: 3,
		},
		{
			name:     "adjacent runs merge",
			xml:      archivetest.DocumentXML("foo", "bar"),
			want:     "foobar",
			wantRuns: 2,
		},
		{
			name:     "empty runs are skipped",
			xml:      docOpen + `<w:p><w:r><w:t>a</w:t></w:r><w:r><w:t/></w:r><w:r><w:t></w:t></w:r><w:r><w:t>b</w:t></w:r></w:p>` + docClose,
			want:     "ab",
			wantRuns: 2,
		},
		{
			name:     "paragraphs add no separators",
			xml:      docOpen + `<w:p><w:r><w:t>one</w:t></w:r></w:p><w:p><w:r><w:tab/><w:t>two</w:t></w:r></w:p>` + docClose,
			want:     "onetwo",
			wantRuns: 2,
		},
		{
			name:     "runs in tables keep document order",
			xml:      docOpen + `<w:p><w:r><w:t>before </w:t></w:r></w:p><w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl><w:p><w:r><w:t> after</w:t></w:r></w:p>` + docClose,
			want:     "before cell after",
			wantRuns: 3,
		},
		{
			name:     "entities are decoded",
			xml:      archivetest.DocumentXML("a < b & c"),
			want:     "a < b & c",
			wantRuns: 1,
		},
		{
			name:     "t elements from other namespaces are ignored",
			xml:      `<w:document xmlns:w="` + WordNamespace + `" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><w:body><w:p><w:r><w:t>kept</w:t></w:r><a:t>dropped</a:t></w:p></w:body></w:document>`,
			want:     "kept",
			wantRuns: 1,
		},
		{
			name:     "no runs",
			xml:      docOpen + `<w:p/>` + docClose,
			want:     "",
			wantRuns: 0,
		},
		{
			name:     "whitespace-only run without space preserve",
			xml:      docOpen + `<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t> </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>` + docClose,
			want:     "Hello World",
			wantRuns: 3,
		},
		{
			name:     "declaration and trailing whitespace are accepted",
			xml:      "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n" + docOpen + `<w:p><w:r><w:t>x</w:t></w:r></w:p>` + docClose + "\n",
			want:     "x",
			wantRuns: 1,
		},
		{
			name:     "non-ASCII text",
			xml:      archivetest.DocumentXML("Licență ", "completă"),
			want:     "Licență completă",
			wantRuns: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(strings.NewReader(tt.xml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.wantRuns, got.Runs)
		})
	}
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{name: "mismatched end tag", xml: docOpen + `<w:p><w:t>x</w:p>` + docClose},
		{name: "truncated", xml: docOpen + `<w:p><w:r><w:t>x`},
		{name: "content after root", xml: docOpen + `<w:p><w:r><w:t>A</w:t></w:r></w:p>` + docClose + `<x/>`},
		{name: "text after root", xml: docOpen + `<w:p><w:r><w:t>A</w:t></w:r></w:p>` + docClose + `trailing`},
		{name: "declaration only", xml: `<?xml version="1.0" encoding="UTF-8"?>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(strings.NewReader(tt.xml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedXML)
		})
	}
}
