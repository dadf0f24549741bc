package object

import "sync"

// ClassVars is the type-shared variable store of one declaring type. It is
// the only mutable structure reachable from multiple instances, so every
// access goes through its mutex: instances of the same type may be
// constructed concurrently and their hooks may touch the same slots.
//
// A variable declared shared is one slot for the whole hierarchy: subtypes
// resolve the name through the dispatch order to the declaring type's slot
// rather than getting a copy of their own.
type ClassVars struct {
	mu   sync.Mutex
	vars map[string]*classVar
}

type classVar struct {
	shared bool
	value  any
}

func newClassVars() *ClassVars {
	return &ClassVars{vars: make(map[string]*classVar)}
}

// declare runs only during building, before the type is published
func (cv *ClassVars) declare(name string, initial any, shared bool) {
	cv.vars[name] = &classVar{shared: shared, value: initial}
}

func (cv *ClassVars) has(name string, requireShared bool) bool {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	v, ok := cv.vars[name]
	if !ok {
		return false
	}
	return !requireShared || v.shared
}

// load returns the current value
func (cv *ClassVars) load(name string) (any, bool) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	v, ok := cv.vars[name]
	if !ok {
		return nil, false
	}
	return v.value, true
}

// store replaces the current value
func (cv *ClassVars) store(name string, value any) bool {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	v, ok := cv.vars[name]
	if !ok {
		return false
	}
	v.value = value
	return true
}

// update applies fn under the lock and returns the previous value. This is
// the read-modify-write primitive hooks use for counters.
func (cv *ClassVars) update(name string, fn func(any) any) (any, bool) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	v, ok := cv.vars[name]
	if !ok {
		return nil, false
	}
	prev := v.value
	v.value = fn(prev)
	return prev, true
}

// classVarOwner finds the store holding the named variable for this type:
// the type's own store first, then shared slots along the dispatch order.
func (t *TypeMetaobject) classVarOwner(name string) (*ClassVars, bool) {
	if t.classVars.has(name, false) {
		return t.classVars, true
	}
	for _, level := range t.mro[1:] {
		if level.classVars.has(name, true) {
			return level.classVars, true
		}
	}
	return nil, false
}

// ClassVarLoad reads a class-shared variable visible from this type
func (t *TypeMetaobject) ClassVarLoad(name string) (any, error) {
	cv, ok := t.classVarOwner(name)
	if !ok {
		return nil, NewUnknownNameError(t.name, "class variable", name)
	}
	v, _ := cv.load(name)
	return v, nil
}

// ClassVarStore replaces a class-shared variable visible from this type
func (t *TypeMetaobject) ClassVarStore(name string, value any) error {
	cv, ok := t.classVarOwner(name)
	if !ok {
		return NewUnknownNameError(t.name, "class variable", name)
	}
	cv.store(name, value)
	return nil
}

// ClassVarUpdate atomically applies fn to a class-shared variable and
// returns the value it replaced. Two concurrent updates never observe the
// same previous value.
func (t *TypeMetaobject) ClassVarUpdate(name string, fn func(any) any) (any, error) {
	cv, ok := t.classVarOwner(name)
	if !ok {
		return nil, NewUnknownNameError(t.name, "class variable", name)
	}
	prev, _ := cv.update(name, fn)
	return prev, nil
}
