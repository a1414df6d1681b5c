package platform

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Document is an in-memory document: class lists for the root and body
// elements plus custom properties set on the root. Terminal hosts render from
// it; tests inspect it.
type Document struct {
	mu       sync.RWMutex
	classes  map[Target]map[string]struct{}
	vars     map[string]string
	previous map[Target]string
}

var _ DOM = (*Document)(nil)

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		classes: map[Target]map[string]struct{}{
			TargetRoot: {},
			TargetBody: {},
		},
		vars:     make(map[string]string),
		previous: make(map[Target]string),
	}
}

// Capture records every target's current class attribute as the outgoing
// state of a transition. Pass it to NewAnimated.
func (d *Document) Capture() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for target, set := range d.classes {
		d.previous[target] = strings.Join(slices.Sorted(maps.Keys(set)), " ")
	}
}

// Previous returns target's class attribute at the last Capture, and false
// if nothing was captured yet.
func (d *Document) Previous(target Target) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.previous[target]
	return v, ok
}

func (d *Document) AddClass(target Target, names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	set, ok := d.classes[target]
	if !ok {
		set = make(map[string]struct{})
		d.classes[target] = set
	}
	for _, n := range names {
		set[n] = struct{}{}
	}
}

func (d *Document) RemoveClass(target Target, names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range names {
		delete(d.classes[target], n)
	}
}

// HasClass reports whether target carries name.
func (d *Document) HasClass(target Target, name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.classes[target][name]
	return ok
}

// Classes returns target's classes, sorted.
func (d *Document) Classes(target Target) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Sorted(maps.Keys(d.classes[target]))
}

// ClassAttr renders target's classes as an HTML class attribute value.
func (d *Document) ClassAttr(target Target) string {
	return strings.Join(d.Classes(target), " ")
}

func (d *Document) SetStyleProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vars[name] = value
}

// StyleProperty returns a custom property set on the root.
func (d *Document) StyleProperty(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.vars[name]
	return v, ok
}

// CSS renders the root custom properties as a :root rule, sorted by name.
func (d *Document) CSS() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range slices.Sorted(maps.Keys(d.vars)) {
		fmt.Fprintf(&b, "  %s: %s;\n", name, d.vars[name])
	}
	b.WriteString("}\n")
	return b.String()
}
