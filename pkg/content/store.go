// Package content holds the course content store: the authored topics in
// presentation order, plus optional YAML overlays so instructors can edit
// prose without recompiling.
package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iotsyslab/coursedeck/pkg/model"
)

// Store is an ordered, read-only collection of topics. The zero value is
// not usable; construct with NewStore or DefaultStore.
type Store struct {
	topics []model.Topic
	byID   map[string]int
}

// NewStore builds a store from the given topics, preserving order.
func NewStore(topics []model.Topic) *Store {
	s := &Store{
		topics: topics,
		byID:   make(map[string]int, len(topics)),
	}
	for i, t := range topics {
		s.byID[t.ID] = i
	}
	return s
}

// DefaultStore returns the built-in course.
func DefaultStore() *Store {
	return NewStore(courseTopics())
}

// Topics returns the topics in presentation order. Callers must not
// mutate the returned slice.
func (s *Store) Topics() []model.Topic {
	return s.topics
}

// IDs returns the topic IDs in presentation order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.topics))
	for i, t := range s.topics {
		ids[i] = t.ID
	}
	return ids
}

// Len returns the number of topics.
func (s *Store) Len() int {
	return len(s.topics)
}

// Lookup returns the topic with the given ID.
func (s *Store) Lookup(id string) (model.Topic, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Topic{}, false
	}
	return s.topics[i], true
}

// Index returns the position of id in presentation order, or -1.
func (s *Store) Index(id string) int {
	i, ok := s.byID[id]
	if !ok {
		return -1
	}
	return i
}

// Validate checks the store's referential integrity: IDs must be unique,
// non-blank, and every topic must carry a title and a goal. Returned
// errors name the offending topic so authoring mistakes are caught by the
// test suite rather than at render time.
func (s *Store) Validate() error {
	seen := make(map[string]bool, len(s.topics))
	var problems []string
	for i, t := range s.topics {
		switch {
		case strings.TrimSpace(t.ID) == "":
			problems = append(problems, fmt.Sprintf("topic %d has a blank ID", i))
		case seen[t.ID]:
			problems = append(problems, fmt.Sprintf("duplicate topic ID %q", t.ID))
		}
		seen[t.ID] = true
		if strings.TrimSpace(t.Title) == "" {
			problems = append(problems, fmt.Sprintf("topic %q has no title", t.ID))
		}
		if strings.TrimSpace(t.Goal) == "" {
			problems = append(problems, fmt.Sprintf("topic %q has no goal", t.ID))
		}
		if len(t.Subtopics) == 0 {
			problems = append(problems, fmt.Sprintf("topic %q has no subtopics", t.ID))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("content store: %s", strings.Join(problems, "; "))
	}
	return nil
}

// WithOverlays returns a new store with overlay topics merged in. An
// overlay whose ID matches an existing topic replaces the matching
// non-empty fields; an overlay with a new ID is appended after the
// built-in course.
func (s *Store) WithOverlays(overlays []model.Topic) *Store {
	merged := make([]model.Topic, len(s.topics))
	copy(merged, s.topics)

	for _, ov := range overlays {
		i, ok := s.byID[ov.ID]
		if !ok {
			merged = append(merged, ov)
			continue
		}
		merged[i] = mergeTopic(merged[i], ov)
	}
	return NewStore(merged)
}

// mergeTopic overlays non-empty fields of ov onto base.
func mergeTopic(base, ov model.Topic) model.Topic {
	out := base
	if ov.Title != "" {
		out.Title = ov.Title
	}
	if ov.Goal != "" {
		out.Goal = ov.Goal
	}
	if len(ov.Subtopics) > 0 {
		out.Subtopics = ov.Subtopics
	}
	if len(ov.Labs) > 0 {
		out.Labs = ov.Labs
	}
	if ov.Overview != "" {
		out.Overview = ov.Overview
	}
	if ov.Body != "" {
		out.Body = ov.Body
	}
	if ov.Code != "" {
		out.Code = ov.Code
		out.CodeLang = ov.CodeLang
	}
	return out
}
