package events

import "github.com/atomicstack/menubar/internal/logging"

type LoaderTracer struct{}

var Loader = LoaderTracer{}

func (LoaderTracer) Fetch(name, file string, shared bool) {
	logging.Trace("loader.fetch", map[string]interface{}{"name": name, "file": file, "shared": shared})
}

func (LoaderTracer) Construct(kind, name string, err error) {
	payload := map[string]interface{}{"kind": kind, "name": name}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("loader.construct", payload)
}
