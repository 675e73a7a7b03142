package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iotsyslab/coursedeck/pkg/model"
)

// overlayFile is the on-disk shape of an overlay document. A file may
// carry a single topic or a list; both forms are accepted so instructors
// can keep one file per topic or one file for the whole course.
type overlayFile struct {
	Topics []model.Topic `yaml:"topics"`
}

// LoadOverlays reads every .yaml/.yml file in dir (sorted by name) and
// returns the topics they declare. A missing directory is not an error:
// it returns an empty slice so callers can treat overlays as optional.
// A malformed file is an error naming the file; later files are not
// silently skipped past a bad one.
func LoadOverlays(dir string) ([]model.Topic, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read overlay dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var topics []model.Topic
	for _, name := range names {
		path := filepath.Join(dir, name)
		loaded, err := loadOverlayFile(path)
		if err != nil {
			return nil, fmt.Errorf("overlay %s: %w", name, err)
		}
		topics = append(topics, loaded...)
	}
	return topics, nil
}

func loadOverlayFile(path string) ([]model.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Try the list form first, then fall back to a bare topic document.
	var file overlayFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Topics) > 0 {
		return validateOverlayIDs(file.Topics)
	}

	var single model.Topic
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if strings.TrimSpace(single.ID) == "" {
		return nil, fmt.Errorf("no topics declared (want a topic document or a topics: list)")
	}
	return validateOverlayIDs([]model.Topic{single})
}

func validateOverlayIDs(topics []model.Topic) ([]model.Topic, error) {
	for i, t := range topics {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("topic %d has a blank id", i)
		}
	}
	return topics, nil
}
