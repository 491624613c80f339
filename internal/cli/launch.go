package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/goals-tui/internal/config"
	"github.com/pdxmph/goals-tui/internal/goals"
	"github.com/pdxmph/goals-tui/internal/kv"
	"github.com/pdxmph/goals-tui/internal/tui"
)

func runLaunch(opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, slot, err := openService(cfg, opts.ephemeral)
	if err != nil {
		return err
	}
	defer slot.Close()

	model := tui.New(svc, tui.WithFirstWeekday(cfg.FirstWeekday()))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openService opens the configured slot and restores the goal list from it
func openService(cfg *config.Config, ephemeral bool) (*goals.Service, kv.Store, error) {
	backend := cfg.Storage.Backend
	if ephemeral {
		backend = "memory"
	}

	format, err := goals.ParseFormat(cfg.Storage.Format)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	slot, err := kv.Open(backend, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}

	store := goals.NewStore(slot, cfg.Storage.Key, format)
	store.Restore()
	log.Printf("restored %d goals from %s backend", len(store.Goals()), slot.Name())

	return goals.NewService(store, goals.WithLocation(loc)), slot, nil
}

// setupLogging keeps log output off the terminal while the UI owns it
func setupLogging(cfg *config.Config) (func(), error) {
	prev := log.Writer()
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.Log.File, "goals-tui")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() {
		log.SetOutput(prev)
		f.Close()
	}, nil
}
