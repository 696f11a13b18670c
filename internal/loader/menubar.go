package loader

import (
	"context"
	"fmt"

	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
)

// KindMenuBar is the widget kind constructed by MenuBarFactory.
const KindMenuBar = "menuBar"

// MenuBarFactory decodes a menu bar spec and builds it against registry.
func MenuBarFactory(registry *menu.Registry) Factory {
	return func(doc Document) (interface{}, error) {
		spec, err := menu.Decode(doc.Data, doc.Format)
		if err != nil {
			return nil, err
		}
		bar, err := menubar.Build(spec, registry)
		if err != nil {
			return nil, err
		}
		return bar, nil
	}
}

// MenuBar loads name as a menu bar.
func (l *Loader) MenuBar(ctx context.Context, name string) (*menubar.Bar, error) {
	widget, err := l.Load(ctx, KindMenuBar, name)
	if err != nil {
		return nil, err
	}
	bar, ok := widget.(*menubar.Bar)
	if !ok {
		return nil, fmt.Errorf("%s: factory for %s returned %T", name, KindMenuBar, widget)
	}
	return bar, nil
}
