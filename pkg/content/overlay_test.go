package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeOverlay(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadOverlaysMissingDir(t *testing.T) {
	topics, err := LoadOverlays(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(topics) != 0 {
		t.Fatalf("expected no topics, got %d", len(topics))
	}
}

func TestLoadOverlaysSingleTopicForm(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "intro.yaml", `
id: intro
title: Revised Introduction
body: |
  Updated for the new semester.
`)

	topics, err := LoadOverlays(dir)
	if err != nil {
		t.Fatalf("LoadOverlays: %v", err)
	}
	if len(topics) != 1 {
		t.Fatalf("got %d topics, want 1", len(topics))
	}
	if topics[0].ID != "intro" || topics[0].Title != "Revised Introduction" {
		t.Errorf("unexpected topic: %+v", topics[0])
	}
}

func TestLoadOverlaysListForm(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "course.yml", `
topics:
  - id: intro
    title: New Intro
  - id: extra
    title: Extra Session
    goal: bonus material
    subtopics: [one, two]
`)

	topics, err := LoadOverlays(dir)
	if err != nil {
		t.Fatalf("LoadOverlays: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(topics))
	}
	if topics[1].ID != "extra" || len(topics[1].Subtopics) != 2 {
		t.Errorf("unexpected second topic: %+v", topics[1])
	}
}

func TestLoadOverlaysSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "b.yaml", "id: second\ntitle: B\n")
	writeOverlay(t, dir, "a.yaml", "id: first\ntitle: A\n")
	writeOverlay(t, dir, "notes.txt", "not yaml, ignored")

	topics, err := LoadOverlays(dir)
	if err != nil {
		t.Fatalf("LoadOverlays: %v", err)
	}
	if len(topics) != 2 || topics[0].ID != "first" || topics[1].ID != "second" {
		t.Fatalf("expected sorted [first second], got %+v", topics)
	}
}

func TestLoadOverlaysBadFileNamed(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "broken.yaml", "topics: [this is: {not valid")

	_, err := LoadOverlays(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoadOverlaysBlankIDRejected(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "blank.yaml", "topics:\n  - title: No ID\n")

	if _, err := LoadOverlays(dir); err == nil {
		t.Fatal("expected blank-id error")
	}
}
