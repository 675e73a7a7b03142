package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iotsyslab/coursedeck/internal/progressdb"
	"github.com/iotsyslab/coursedeck/pkg/calcform"
	"github.com/iotsyslab/coursedeck/pkg/config"
	"github.com/iotsyslab/coursedeck/pkg/content"
	"github.com/iotsyslab/coursedeck/pkg/export"
	"github.com/iotsyslab/coursedeck/pkg/model"
	"github.com/iotsyslab/coursedeck/pkg/ui"
	"github.com/iotsyslab/coursedeck/pkg/version"
	"github.com/iotsyslab/coursedeck/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	topicFlag := flag.String("topic", "", "Topic ID to open on startup (e.g. 'energy')")
	contentDir := flag.String("content-dir", "", "Directory of YAML topic overlays (overrides config)")
	noPersist := flag.Bool("no-persist", false, "Do not load or save topic progress")
	snapshotDir := flag.String("snapshot", "", "Write SVG/PNG chart snapshots to the given directory and exit")
	outlinePath := flag.String("outline", "", "Write the course outline as markdown to the given file ('-' for stdout) and exit")
	robotOutline := flag.Bool("robot-outline", false, "Emit the outline as JSON instead of markdown")
	calcFlag := flag.String("calc", "", "Run an interactive calculator ('energy' or 'cloud') and exit")
	seedFlag := flag.Uint64("seed", 0, "Fixed seed for simulated sensor noise (0 = time-based)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: coursedeck [options]")
		fmt.Println("\nAn interactive terminal presentation for an IoT systems course.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("coursedeck %s\n", version.Version)
		os.Exit(0)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		fmt.Fprintf(os.Stderr, "Warning: config not loaded: %v\n", cfgErr)
		cfg = config.DefaultConfig()
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	overlayDir := cfg.ContentDir
	if *contentDir != "" {
		overlayDir = *contentDir
	}

	store := content.DefaultStore()
	if overlayDir != "" {
		overlays, err := content.LoadOverlays(overlayDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: overlays not loaded: %v\n", err)
		} else {
			store = store.WithOverlays(overlays)
		}
	}
	if err := store.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid course content: %v\n", err)
		os.Exit(1)
	}

	if *calcFlag != "" {
		if err := calcform.Run(*calcFlag, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *snapshotDir != "" {
		if err := export.SaveAll(*snapshotDir, seed); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshots: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Chart snapshots written to %s\n", *snapshotDir)
		os.Exit(0)
	}

	persist := cfg.PersistEnabled() && !*noPersist

	var db *progressdb.Store
	if persist {
		var err error
		db, err = progressdb.Open(filepath.Join(config.StateDir(), "progress.db"))
		if err != nil {
			// Best-effort: run the session without persistence.
			fmt.Fprintf(os.Stderr, "Warning: progress database unavailable: %v\n", err)
			db = nil
		}
	}
	defer db.Close()

	progress, err := db.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: saved progress not loaded: %v\n", err)
		progress = nil
	}

	if *outlinePath != "" || *robotOutline {
		path := *outlinePath
		if path == "" {
			path = "-"
		}
		if err := writeOutline(path, *robotOutline, store, progress); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing outline: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	startTopic := *topicFlag
	if startTopic == "" {
		startTopic = cfg.DefaultTopic
	}
	if *topicFlag != "" && store.Index(*topicFlag) < 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown topic %q. Known topics: %s\n",
			*topicFlag, strings.Join(store.IDs(), ", "))
		os.Exit(2)
	}

	m := ui.NewModel(store, progress, ui.DefaultTheme(lipgloss.DefaultRenderer())).
		WithSeed(seed).
		WithSidebarWidth(cfg.UI.SidebarWidth).
		WithStartTopic(startTopic)
	if persist {
		m = m.WithSaver(db)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	// Hot-reload overlays while the presentation runs.
	if overlayDir != "" {
		w, werr := watcher.New(overlayDir)
		if werr == nil && w.Start() == nil {
			defer w.Stop()
			go func() {
				for range w.Changed() {
					overlays, oerr := content.LoadOverlays(overlayDir)
					if oerr != nil {
						continue
					}
					p.Send(ui.ReloadMsg{Store: content.DefaultStore().WithOverlays(overlays)})
				}
			}()
		}
	}

	if err := runTUIProgram(p); err != nil {
		fmt.Printf("Error running coursedeck: %v\n", err)
		os.Exit(1)
	}
}

func writeOutline(path string, robot bool, store *content.Store, progress model.Progress) error {
	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if robot {
		return export.WriteRobotOutline(out, store, progress)
	}
	return export.WriteOutline(out, store, progress)
}

func runTUIProgram(p *tea.Program) error {
	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set COURSEDECK_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("COURSEDECK_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
