// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archivetest builds DOCX-shaped zip fixtures for tests.
package archivetest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WordNS is the WordprocessingML main namespace.
const WordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Entry is one named member of a fixture archive. Entries are written in
// slice order so tests can rely on archive order.
type Entry struct {
	Name string
	Body string
}

// WriteZip writes entries to dir/name and returns the archive path.
func WriteZip(t *testing.T, dir, name string, entries []Entry) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

// DocumentXML returns a minimal word/document.xml body with one paragraph
// holding one w:t element per run.
func DocumentXML(runs ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="` + WordNS + `"><w:body><w:p>`)
	for _, r := range runs {
		b.WriteString(`<w:r><w:t xml:space="preserve">`)
		b.WriteString(escape(r))
		b.WriteString(`</w:t></w:r>`)
	}
	b.WriteString(`</w:p></w:body></w:document>`)
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
