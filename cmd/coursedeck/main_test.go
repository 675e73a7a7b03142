package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iotsyslab/coursedeck/pkg/content"
	"github.com/iotsyslab/coursedeck/pkg/model"
)

func TestWriteOutlineMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.md")
	progress := model.Progress{"intro": true}

	if err := writeOutline(path, false, content.DefaultStore(), progress); err != nil {
		t.Fatalf("writeOutline: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "# IoT Systems Course Outline") {
		t.Error("missing outline heading")
	}
	if !strings.Contains(out, "[x] 1. Introduction to IoT Systems") {
		t.Error("completed topic not checked")
	}
}

func TestWriteOutlineJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.json")

	if err := writeOutline(path, true, content.DefaultStore(), nil); err != nil {
		t.Fatalf("writeOutline: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Error("robot outline should be JSON")
	}
}
