package restocklog

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRequestAppendsOncePerIngredient(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "Request.txt"))

	if err := log.Request("cheese", 18, 20); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := log.Request("cheese", 12, 20); err != nil {
		t.Fatalf("repeat request: %v", err)
	}
	if err := log.Request("tomato", 9, 15); err != nil {
		t.Fatalf("second ingredient: %v", err)
	}

	contents, err := log.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got := strings.Count(contents, "cheese"); got != 1 {
		t.Fatalf("cheese appears %d times:\n%s", got, contents)
	}
	if !strings.Contains(contents, "tomato") {
		t.Fatalf("tomato request missing:\n%s", contents)
	}
}

func TestContains(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "Request.txt"))

	if ok, err := log.Contains("cheese"); err != nil || ok {
		t.Fatalf("empty log Contains = (%v, %v)", ok, err)
	}
	if err := log.Request("cheese", 18, 20); err != nil {
		t.Fatal(err)
	}
	if ok, err := log.Contains("cheese"); err != nil || !ok {
		t.Fatalf("Contains after request = (%v, %v)", ok, err)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "Request.txt"))
	contents, err := log.ReadAll()
	if err != nil || contents != "" {
		t.Fatalf("ReadAll on missing file = (%q, %v)", contents, err)
	}
}
