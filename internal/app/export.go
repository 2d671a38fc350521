package app

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/energiflow/internal/model"
)

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	path string
	err  error
}

// exportData writes a pretty-printed copy of the stored document to a
// timestamped JSON file in the working directory.
func (m Model) exportData() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		out, err := s.Export()
		if err != nil {
			return exportDoneMsg{err: err}
		}

		path := fmt.Sprintf("energiflow-export-%d.json", model.NowMillis())
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return exportDoneMsg{err: fmt.Errorf("writing export file: %w", err)}
		}
		return exportDoneMsg{path: path}
	}
}
