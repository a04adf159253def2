package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
)

// cmdScheduler turns cutover requests into tea.Tick commands. Requests made
// while handling a message are collected and returned from Update.
type cmdScheduler struct {
	pending []scheduledCutover
	last    globalsearch.CutoverDue
}

type scheduledCutover struct {
	delay time.Duration
	due   globalsearch.CutoverDue
}

// Schedule implements globalsearch.Scheduler. Replaced timers still fire;
// the search ignores them by generation.
func (s *cmdScheduler) Schedule(delay time.Duration, due globalsearch.CutoverDue) {
	s.pending = append(s.pending, scheduledCutover{delay: delay, due: due})
	s.last = due
}

func (s *cmdScheduler) drain() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, p := range s.pending {
		due := p.due
		cmds = append(cmds, tea.Tick(p.delay, func(time.Time) tea.Msg {
			return cutoverMsg{Due: due}
		}))
	}
	s.pending = s.pending[:0]
	return cmds
}
