package menubar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/logging/events"
)

// DefaultRecheckDelay is how long a blur waits for the focus handoff to
// settle before asking where focus went.
const DefaultRecheckDelay = 10 * time.Millisecond

// maxRetries bounds how often an empty focus query is retried.
const maxRetries = 1

// TargetKind classifies the current focus owner of the host.
type TargetKind int

const (
	// TargetNone means nothing holds focus, typically mid handoff.
	TargetNone TargetKind = iota
	// TargetNode means a node of this bar holds focus.
	TargetNode
	// TargetOutside means focus is somewhere outside the bar.
	TargetOutside
)

// Target is the answer to "what is focused now".
type Target struct {
	Kind TargetKind
	Node NodeID
}

// Verdict is the outcome of resolving a Check.
type Verdict int

const (
	VerdictStale Verdict = iota
	VerdictRetry
	VerdictIgnore
	VerdictCollapse
)

func (v Verdict) String() string {
	switch v {
	case VerdictRetry:
		return "retry"
	case VerdictIgnore:
		return "ignore"
	case VerdictCollapse:
		return "collapse"
	default:
		return "stale"
	}
}

// Check is a pending focus-loss re-check. It is delivered back to the host
// as a Bubble Tea message once its delay has elapsed.
type Check struct {
	Node    NodeID
	Attempt int

	gen uint64
}

// Monitor collapses the bar when focus leaves it. Blur schedules a check;
// the check always queries the focus owner afresh when it fires.
type Monitor struct {
	bar   *Bar
	delay time.Duration
	gen   uint64
}

// NewMonitor creates a monitor for bar. A non-positive delay uses
// DefaultRecheckDelay.
func NewMonitor(bar *Bar, delay time.Duration) *Monitor {
	if delay <= 0 {
		delay = DefaultRecheckDelay
	}
	return &Monitor{bar: bar, delay: delay}
}

// Delay returns the re-check delay.
func (m *Monitor) Delay() time.Duration {
	return m.delay
}

// Blur records that id lost focus and returns the first check.
func (m *Monitor) Blur(id NodeID) Check {
	events.Focus.Blur(int(id), 0)
	return Check{Node: id, gen: m.gen}
}

// Cancel invalidates every outstanding check.
func (m *Monitor) Cancel() {
	m.gen++
}

// Reset points the monitor at a replacement bar. Checks issued for the old
// bar become stale.
func (m *Monitor) Reset(bar *Bar) {
	m.gen++
	m.bar = bar
}

// Schedule returns a command that delivers c after the monitor's delay.
func (m *Monitor) Schedule(c Check) tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return c
	})
}

// Resolve evaluates c against the current focus owner. On VerdictRetry the
// returned check must be scheduled again; on VerdictCollapse the bar has
// already been collapsed.
func (m *Monitor) Resolve(c Check, focused Target) (Verdict, Check) {
	verdict, next := m.resolve(c, focused)
	events.Focus.Verdict(int(c.Node), c.Attempt, verdict.String())
	return verdict, next
}

func (m *Monitor) resolve(c Check, focused Target) (Verdict, Check) {
	if c.gen != m.gen || !m.bar.valid(c.Node) {
		return VerdictStale, Check{}
	}
	switch focused.Kind {
	case TargetNone:
		if c.Attempt < maxRetries {
			return VerdictRetry, Check{Node: c.Node, Attempt: c.Attempt + 1, gen: c.gen}
		}
	case TargetNode:
		// Focus on a descendant, a sibling, or anywhere else inside the bar
		// is not a loss; the controller already closed what it moved away
		// from.
		if m.bar.valid(focused.Node) {
			return VerdictIgnore, Check{}
		}
	}
	m.bar.CollapseAll()
	return VerdictCollapse, Check{}
}
