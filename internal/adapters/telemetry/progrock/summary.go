package progrock

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/rollout/internal/ui/output"
	"go.trai.ch/rollout/internal/ui/style"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

type vertexState struct {
	id       string
	name     string
	status   string
	err      string
	duration time.Duration
}

// Summary is a progrock.Writer that collects vertex updates and renders
// one line per vertex when closed.
type Summary struct {
	out io.Writer

	mu       sync.Mutex
	vertices []*vertexState
	closed   bool
}

// NewSummary creates a Summary rendering to out.
func NewSummary(out io.Writer) *Summary {
	return &Summary{out: out}
}

// WriteStatus implements progrock.Writer.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		s.apply(v)
	}
	return nil
}

func (s *Summary) apply(v *progrock.Vertex) {
	state := s.lookup(v.Id)
	if state == nil {
		state = &vertexState{id: v.Id, name: v.Name, status: statusRunning}
		s.vertices = append(s.vertices, state)
	}

	if v.Completed == nil {
		return
	}
	state.status = statusCompleted
	if v.Error != nil {
		state.status = statusFailed
		state.err = *v.Error
	}
	if v.Started != nil {
		state.duration = v.Completed.AsTime().Sub(v.Started.AsTime())
	}
}

func (s *Summary) lookup(id string) *vertexState {
	for _, existing := range s.vertices {
		if existing.id == id {
			return existing
		}
	}
	return nil
}

// Close renders the summary. Subsequent calls do nothing.
func (s *Summary) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.out == nil || len(s.vertices) == 0 {
		s.closed = true
		return nil
	}
	s.closed = true

	_, err := io.WriteString(s.out, s.render())
	return err
}

func (s *Summary) render() string {
	r := lipgloss.NewRenderer(s.out)
	r.SetColorProfile(output.ColorProfile())

	running := r.NewStyle().Foreground(style.Yellow)
	completed := r.NewStyle().Foreground(style.Green)
	failed := r.NewStyle().Foreground(style.Red)
	muted := r.NewStyle().Foreground(style.Muted)

	width := 0
	for _, v := range s.vertices {
		width = max(width, lipgloss.Width(v.name))
	}
	name := r.NewStyle().Width(width)

	var b strings.Builder
	for _, v := range s.vertices {
		var icon string
		switch v.status {
		case statusCompleted:
			icon = completed.Render(style.Check)
		case statusFailed:
			icon = failed.Render(style.Cross)
		default:
			icon = running.Render(style.Dot)
		}

		line := fmt.Sprintf("%s %s", icon, name.Render(v.name))
		if v.status != statusRunning {
			line += " " + muted.Render(v.duration.Round(time.Millisecond).String())
		}
		if v.err != "" {
			line += " " + failed.Render(v.err)
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
