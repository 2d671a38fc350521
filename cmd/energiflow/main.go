package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/energiflow/internal/app"
	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(cfg.DataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening data store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	data := s.Load()

	p := tea.NewProgram(app.New(s, data), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running app: %v\n", err)
		os.Exit(1)
	}
}
