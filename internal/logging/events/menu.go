package events

import "github.com/atomicstack/menubar/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Build(title string, nodes, menus int) {
	logging.Trace("menu.build", map[string]interface{}{"title": title, "nodes": nodes, "menus": menus})
}

func (MenuTracer) Expand(node int, title string) {
	logging.Trace("menu.expand", map[string]interface{}{"node": node, "title": title})
}

func (MenuTracer) Collapse(node int, title string) {
	logging.Trace("menu.collapse", map[string]interface{}{"node": node, "title": title})
}

func (MenuTracer) Focus(node int, title string) {
	logging.Trace("menu.focus", map[string]interface{}{"node": node, "title": title})
}

func (MenuTracer) Key(node int, key string, handled bool) {
	logging.Trace("menu.key", map[string]interface{}{"node": node, "key": key, "handled": handled})
}
