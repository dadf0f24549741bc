package object

import "sort"

// sortedMethods returns a table's entries ordered by name so introspection
// output is stable across runs.
func sortedMethods(table map[string]*MethodDescriptor) []*MethodDescriptor {
	out := make([]*MethodDescriptor, 0, len(table))
	for _, md := range table {
		out = append(out, md)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
