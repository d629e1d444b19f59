package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive console and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opt Options) error {
	applyColorProfile(opt.Theme)
	p := tea.NewProgram(New(ctx, opt),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
