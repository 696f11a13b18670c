package events

import "github.com/atomicstack/menubar/internal/logging"

type FocusTracer struct{}

var Focus = FocusTracer{}

func (FocusTracer) Blur(node int, attempt int) {
	logging.Trace("focus.blur", map[string]interface{}{"node": node, "attempt": attempt})
}

func (FocusTracer) Verdict(node int, attempt int, verdict string) {
	logging.Trace("focus.verdict", map[string]interface{}{"node": node, "attempt": attempt, "verdict": verdict})
}

func (FocusTracer) Owner(owner string, node int) {
	logging.Trace("focus.owner", map[string]interface{}{"owner": owner, "node": node})
}
