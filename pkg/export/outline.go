package export

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/iotsyslab/coursedeck/pkg/content"
	"github.com/iotsyslab/coursedeck/pkg/model"
)

// WriteOutline writes a markdown outline of the course: titles, goals,
// subtopics, and lab lists, with completion marks from progress.
func WriteOutline(w io.Writer, store *content.Store, progress model.Progress) error {
	if _, err := fmt.Fprintf(w, "# IoT Systems Course Outline\n\n%d topics, %d completed\n",
		store.Len(), progress.Completed()); err != nil {
		return err
	}

	for _, topic := range store.Topics() {
		mark := " "
		if progress[topic.ID] {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "\n## [%s] %s\n\n*Goal: %s*\n\n", mark, topic.Title, topic.Goal); err != nil {
			return err
		}
		for _, sub := range topic.Subtopics {
			if _, err := fmt.Fprintf(w, "- %s\n", sub); err != nil {
				return err
			}
		}
		if topic.HasLabs() {
			if _, err := fmt.Fprintf(w, "\n### Lab activities\n\n"); err != nil {
				return err
			}
			for i, lab := range topic.Labs {
				if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, lab); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// robotOutline is the machine-readable course dump, stable for scripted
// consumers.
type robotOutline struct {
	TopicCount     int          `json:"topic_count"`
	CompletedCount int          `json:"completed_count"`
	Topics         []robotTopic `json:"topics"`
}

type robotTopic struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Goal      string   `json:"goal"`
	Subtopics []string `json:"subtopics"`
	Labs      []string `json:"labs,omitempty"`
	HasCode   bool     `json:"has_code"`
	Completed bool     `json:"completed"`
}

// WriteRobotOutline writes the course and progress as indented JSON.
func WriteRobotOutline(w io.Writer, store *content.Store, progress model.Progress) error {
	out := robotOutline{
		TopicCount:     store.Len(),
		CompletedCount: progress.Completed(),
	}
	for _, topic := range store.Topics() {
		out.Topics = append(out.Topics, robotTopic{
			ID:        topic.ID,
			Title:     topic.Title,
			Goal:      topic.Goal,
			Subtopics: topic.Subtopics,
			Labs:      topic.Labs,
			HasCode:   topic.HasCode(),
			Completed: progress[topic.ID],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
