package export

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// SaveAll renders every course chart into dir, in both SVG and PNG,
// concurrently. The first error aborts remaining renders.
func SaveAll(dir string, seed uint64) error {
	jobs := []struct {
		name   string
		render func(path string) error
	}{
		{"architecture", SaveArchitectureDiagram},
		{"sensor-timeline", func(p string) error { return SaveSensorChart(p, seed) }},
		{"energy-monitoring", func(p string) error { return SaveEnergyChart(p, seed) }},
		{"edge-vs-cloud", SaveComparisonRadar},
	}

	var g errgroup.Group
	for _, job := range jobs {
		for _, ext := range []string{".svg", ".png"} {
			path := filepath.Join(dir, job.name+ext)
			render := job.render
			g.Go(func() error {
				if err := render(path); err != nil {
					return fmt.Errorf("render %s: %w", filepath.Base(path), err)
				}
				return nil
			})
		}
	}
	return g.Wait()
}
