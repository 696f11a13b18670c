package menu

import (
	"fmt"
	"sort"
	"strings"
)

// Node represents a callback namespace entry within the registry tree.
type Node struct {
	ID       string
	Action   Action
	Children map[string]*Node
}

// Registry maps dotted callback identifiers (for example "file.open") to
// actions. Hosts populate it before building a bar.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	root := &Node{ID: "", Children: make(map[string]*Node)}
	return &Registry{root: root, nodes: map[string]*Node{"": root}}
}

// Register binds action to the dotted identifier id, creating intermediate
// namespaces as needed. Re-registering an id replaces its action.
func (r *Registry) Register(id string, action Action) error {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return fmt.Errorf("invalid action identifier %q", id)
	}
	if action == nil {
		return fmt.Errorf("nil action for %q", id)
	}
	r.ensure(id).Action = action
	return nil
}

// MustRegister is Register for static tables; it panics on invalid input.
func (r *Registry) MustRegister(id string, action Action) {
	if err := r.Register(id, action); err != nil {
		panic(err)
	}
}

func (r *Registry) ensure(id string) *Node {
	if node, ok := r.nodes[id]; ok {
		return node
	}
	node := &Node{ID: id, Children: make(map[string]*Node)}
	r.nodes[id] = node
	parentID, key := parentKey(id)
	parent := r.ensure(parentID)
	parent.Children[key] = node
	return node
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves a child node under the given parent for the provided key.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

// Resolve walks the dotted path segment by segment from the root. It reports
// false for an empty path, an unknown segment, or a namespace without an
// action.
func (r *Registry) Resolve(path string) (Action, bool) {
	if r == nil {
		return nil, false
	}
	path = strings.TrimSpace(path)
	if !validID(path) {
		return nil, false
	}
	node := r.root
	for _, segment := range strings.Split(path, ".") {
		next, ok := node.Children[segment]
		if !ok {
			return nil, false
		}
		node = next
	}
	if node.Action == nil {
		return nil, false
	}
	return node.Action, true
}

// Names lists every identifier with a bound action, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.nodes))
	for id, node := range r.nodes {
		if node.Action != nil {
			names = append(names, id)
		}
	}
	sort.Strings(names)
	return names
}

func validID(id string) bool {
	if id == "" {
		return false
	}
	for _, segment := range strings.Split(id, ".") {
		if segment == "" {
			return false
		}
	}
	return true
}

func parentKey(id string) (string, string) {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return "", id
	}
	return id[:idx], id[idx+1:]
}
