package web

import (
	"bytes"
	"strings"
	"testing"
)

func TestTemplates_DefinesEveryPage(t *testing.T) {
	tmpl := Templates()
	for _, name := range []string{"index", "status", "statusall", "file"} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("template %q not defined", name)
		}
	}
}

func TestTemplates_FileEscapesNames(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, "file", map[string]any{
		"title": "data of nangi",
		"data": []struct{ FileName, FileTime string }{
			{FileName: "../data/nangi/<b>.txt", FileTime: "Mon, 15 Jan 2024 02:45:00 GMT"},
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>.txt") {
		t.Fatalf("file name not escaped: %s", out)
	}
	if !strings.Contains(out, "data of nangi") || !strings.Contains(out, "Mon, 15 Jan 2024 02:45:00 GMT") {
		t.Fatalf("missing content: %s", out)
	}
}
