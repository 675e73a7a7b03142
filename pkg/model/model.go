// Package model defines the core course data types shared across packages.
package model

import "strings"

// Topic is one unit of course content: prose, key subtopics, lab
// activities, and a code sample. Topics are authored once and never
// mutated at run time.
type Topic struct {
	ID        string   `yaml:"id" json:"id"`
	Title     string   `yaml:"title" json:"title"`
	Goal      string   `yaml:"goal" json:"goal"`
	Subtopics []string `yaml:"subtopics" json:"subtopics"`
	Labs      []string `yaml:"labs,omitempty" json:"labs,omitempty"`

	// Overview is the short academic framing shown before the body.
	Overview string `yaml:"overview" json:"overview"`
	// Body is the practical content, rendered as markdown.
	Body string `yaml:"body" json:"body"`

	// Code sample shown on the Code tab.
	Code     string `yaml:"code,omitempty" json:"code,omitempty"`
	CodeLang string `yaml:"code_lang,omitempty" json:"code_lang,omitempty"`
}

// HasLabs reports whether the topic carries lab activities (only the
// capstone topic does in the default course).
func (t Topic) HasLabs() bool {
	return len(t.Labs) > 0
}

// HasCode reports whether the topic has a non-blank code sample.
func (t Topic) HasCode() bool {
	return strings.TrimSpace(t.Code) != ""
}

// Progress maps topic IDs to a completed flag. It lives for the duration
// of a session; persistence is best-effort and owned by the caller.
type Progress map[string]bool

// Toggle flips the completed flag for id and returns the new value.
// Only the entry for id changes.
func (p Progress) Toggle(id string) bool {
	v := !p[id]
	p[id] = v
	return v
}

// Completed counts topics marked done.
func (p Progress) Completed() int {
	n := 0
	for _, done := range p {
		if done {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the progress map.
func (p Progress) Clone() Progress {
	out := make(Progress, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
