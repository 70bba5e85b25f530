package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/quarryworks/lode/pkg/domain"
)

// RunStats accumulates excavation totals for the end-of-run report.
type RunStats struct {
	mu         sync.Mutex
	ticks      int
	failures   int
	expansions int
	frames     map[domain.FrameKind]int
	blocks     map[string]int
}

// NewRunStats creates an empty stats collector.
func NewRunStats() *RunStats {
	return &RunStats{
		frames: make(map[domain.FrameKind]int),
		blocks: make(map[string]int),
	}
}

// Hooks returns lifecycle hooks feeding the collector.
func (s *RunStats) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(ctx context.Context, e *domain.TickEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.ticks++
			if e.Result == domain.ResultFailure {
				s.failures++
			}
		},
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if e.Expanded {
				s.expansions++
				s.blocks[e.Block]++
			}
		},
		OnFrameDone: func(ctx context.Context, e *domain.FrameEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.frames[e.Kind]++
		},
	}
}

// Markdown renders the collected stats as a markdown report.
func (s *RunStats) Markdown(sessionID string, dir domain.Direction, elapsed time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "# Excavation Report\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Session | `%s` |\n", sessionID)
	fmt.Fprintf(&b, "| Direction | %s |\n", dir)
	fmt.Fprintf(&b, "| Duration | %s |\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "| Ticks | %d |\n", s.ticks)
	fmt.Fprintf(&b, "| Failed ticks | %d |\n", s.failures)
	fmt.Fprintf(&b, "| Cells mined | %d |\n", s.expansions)

	if len(s.blocks) > 0 {
		fmt.Fprintf(&b, "\n## Blocks\n\n")
		names := make([]string, 0, len(s.blocks))
		for name := range s.blocks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %d\n", name, s.blocks[name])
		}
	}

	return b.String()
}

// RenderMarkdown renders markdown for the terminal using glamour.
func RenderMarkdown(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
