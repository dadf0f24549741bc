package object

// Introspection surface. Every query returns descriptor values copied out
// of the frozen tables, never references into them, so inspection cannot
// mutate the type system. Lookup misses are normal optional results, not
// errors.

// Fields returns the field descriptors visible on t. With localOnly set it
// covers only fields t declares directly; otherwise it walks the dispatch
// order front-to-back, each level's fields in declaration order.
func (t *TypeMetaobject) Fields(localOnly bool) []FieldDescriptor {
	if localOnly {
		return t.fields.All()
	}
	var out []FieldDescriptor
	for _, level := range t.mro {
		out = append(out, level.fields.All()...)
	}
	return out
}

// MRO returns a copy of t's dispatch order, t itself first
func (t *TypeMetaobject) MRO() []*TypeMetaobject {
	return append([]*TypeMetaobject(nil), t.mro...)
}

// MRONames returns the dispatch order as type names
func (t *TypeMetaobject) MRONames() []string {
	names := make([]string, len(t.mro))
	for i, u := range t.mro {
		names[i] = u.name
	}
	return names
}

// PublicMethods returns the public method descriptors visible on t. With
// localOnly set it covers only t's own table; otherwise the walk follows
// the dispatch order and an overriding method hides same-named entries of
// later levels.
func (t *TypeMetaobject) PublicMethods(localOnly bool) []MethodDescriptor {
	if localOnly {
		return copyMethodTable(t.publicMethods)
	}
	seen := make(map[string]bool)
	var out []MethodDescriptor
	for _, level := range t.mro {
		for _, md := range sortedMethods(level.publicMethods) {
			if seen[md.Name] {
				continue
			}
			seen[md.Name] = true
			out = append(out, *md)
		}
	}
	return out
}

// PrivateMethods returns t's private method descriptors. Private methods
// are not inherited in the dispatch sense, so the list is always local.
func (t *TypeMetaobject) PrivateMethods() []MethodDescriptor {
	return copyMethodTable(t.privateMethods)
}

// LookupMethod resolves a public method name along the dispatch order.
// Absence is an ordinary outcome, reported through the bool.
func (t *TypeMetaobject) LookupMethod(name string) (MethodDescriptor, bool) {
	md, ok := resolve(t, name)
	if !ok {
		return MethodDescriptor{}, false
	}
	return *md, true
}

// LookupPrivateMethod resolves a private method declared by t itself
func (t *TypeMetaobject) LookupPrivateMethod(name string) (MethodDescriptor, bool) {
	md, ok := t.privateMethods[name]
	if !ok {
		return MethodDescriptor{}, false
	}
	return *md, true
}

func copyMethodTable(table map[string]*MethodDescriptor) []MethodDescriptor {
	out := make([]MethodDescriptor, 0, len(table))
	for _, md := range sortedMethods(table) {
		out = append(out, *md)
	}
	return out
}
