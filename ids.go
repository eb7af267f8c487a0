// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import "github.com/golang/glog"

// ID identifies a board or part input or output (a connector, a LED, a
// button) by a small integer resolved from its name once, at construction.
//
type ID int

// InvalidID is returned by lookups of unknown names. Events or bindings
// carrying InvalidID must be ignored.
//
const InvalidID ID = -1

// Valid returns true if id is not InvalidID.
//
func (id ID) Valid() bool { return id >= 0 }

// IDMap maps input or output names to IDs.
//
type IDMap map[string]ID

// Lookup returns the ID for name. Unknown names are logged as configuration
// errors and resolve to InvalidID. kind names the map in the log message
// ("input", "output").
//
func (m IDMap) Lookup(kind, name string) ID {
	if id, ok := m[name]; ok {
		return id
	}
	glog.Warningf("%s %q has no valid id", kind, name)
	return InvalidID
}

// Output is an output slot observed by the rendering collaborator. Set marks
// the slot dirty only when the value changes; the renderer clears the flag
// once it has seen the change.
//
type Output struct {
	value int
	dirty bool
}

// Set sets the slot value. It returns true if the value changed.
//
func (o *Output) Set(v int) bool {
	if o.value == v {
		return false
	}
	o.value = v
	o.dirty = true
	return true
}

// Value returns the current value.
//
func (o *Output) Value() int { return o.value }

// Dirty returns true if the value changed since the last call to Clear.
//
func (o *Output) Dirty() bool { return o.dirty }

// Clear acknowledges a change.
//
func (o *Output) Clear() { o.dirty = false }
