package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"netbox2prom/internal/discovery"
)

func TestRenderEmptyIsArray(t *testing.T) {
	doc, err := Render(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(doc) != "[]\n" {
		t.Fatalf("empty result must render as [], got %q", doc)
	}
}

func TestRenderShape(t *testing.T) {
	groups := []discovery.TargetGroup{
		{
			Targets: []string{"10.0.0.5:10000"},
			Labels: map[string]string{
				"__port__":           "10000",
				"__meta_netbox_name": "edge1",
				"job":                "node",
			},
		},
	}
	doc, err := Render(groups)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(doc)
	if !strings.HasSuffix(s, "\n") {
		t.Fatal("document must end with a newline")
	}
	if !strings.Contains(s, `    "targets"`) {
		t.Fatalf("document must use four-space indent:\n%s", s)
	}
	if !strings.Contains(s, `"10.0.0.5:10000"`) {
		t.Fatalf("target missing from document:\n%s", s)
	}
}

func TestRenderIdempotent(t *testing.T) {
	groups := []discovery.TargetGroup{
		{Targets: []string{"10.0.0.5:10000"}, Labels: map[string]string{"a": "1", "b": "2", "c": "3"}},
	}
	first, err := Render(groups)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := Render(groups)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("same input must render byte-identical documents")
	}
}

func TestFileSinkReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := &FileSink{Path: path}
	if err := s.Write([]byte("[]\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "[]\n" {
		t.Fatalf("unexpected content: %q", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temporary file must not survive a successful write")
	}
}

func TestNewStdoutSentinel(t *testing.T) {
	if _, ok := New("-").(*WriterSink); !ok {
		t.Fatal(`New("-") should write to stdout, not a file`)
	}
	if _, ok := New("targets.json").(*FileSink); !ok {
		t.Fatal("file path should produce a FileSink")
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := &WriterSink{W: &buf}
	if err := s.Write([]byte("[]\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("unexpected buffer content: %q", buf.String())
	}
}
