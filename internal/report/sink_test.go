package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSink_Persist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	sink := NewFileSink(dir, testLogger())

	if err := sink.Persist("report.txt", map[string]string{"greeting": "Добрый день"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "Result: ") {
		t.Errorf("output missing Result prefix: %q", got)
	}
	if !strings.Contains(got, `"greeting": "Добрый день"`) {
		t.Errorf("output missing indented payload: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("output missing trailing newline: %q", got)
	}
}

func TestFileSink_PersistAppends(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir, testLogger())

	if err := sink.Persist("report.txt", []int{1}); err != nil {
		t.Fatal(err)
	}
	if err := sink.Persist("report.txt", []int{2}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "Result: "); n != 2 {
		t.Errorf("got %d results in file, want 2", n)
	}
}
