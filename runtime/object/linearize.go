package object

import (
	"fmt"
	"strings"
)

// linearize computes the C3 dispatch order for a type:
//
//	L(T) = T + merge(L(P1), ..., L(Pn), [P1, ..., Pn])
//
// Parents are already finalized when this runs, so their linearizations are
// cached and immutable. The result depends only on the declared parent
// structure, never on registration timing.
func linearize(t *TypeMetaobject) ([]*TypeMetaobject, error) {
	if len(t.parents) == 0 {
		return []*TypeMetaobject{t}, nil
	}

	seqs := make([][]*TypeMetaobject, 0, len(t.parents)+1)
	for _, p := range t.parents {
		seqs = append(seqs, append([]*TypeMetaobject(nil), p.mro...))
	}
	// The parent list itself preserves local precedence order
	seqs = append(seqs, append([]*TypeMetaobject(nil), t.parents...))

	merged, err := c3Merge(seqs)
	if err != nil {
		return nil, NewInconsistentHierarchyError(t.name, err.Error())
	}

	return append([]*TypeMetaobject{t}, merged...), nil
}

// c3Merge repeatedly selects the head of the first sequence that does not
// appear in the tail of any sequence, removes it everywhere, and appends it
// to the output. If no sequence offers such a head, the declared precedence
// constraints conflict and the merge fails.
func c3Merge(seqs [][]*TypeMetaobject) ([]*TypeMetaobject, error) {
	var result []*TypeMetaobject

	for {
		// Drop exhausted sequences
		live := seqs[:0]
		for _, s := range seqs {
			if len(s) > 0 {
				live = append(live, s)
			}
		}
		seqs = live
		if len(seqs) == 0 {
			return result, nil
		}

		candidate := selectHead(seqs)
		if candidate == nil {
			return nil, fmt.Errorf("conflicting precedence among %s", describeHeads(seqs))
		}

		result = append(result, candidate)
		for i, s := range seqs {
			seqs[i] = remove(s, candidate)
		}
	}
}

// selectHead returns the first head that is in no sequence's tail, or nil
func selectHead(seqs [][]*TypeMetaobject) *TypeMetaobject {
	for _, s := range seqs {
		head := s[0]
		if !inAnyTail(seqs, head) {
			return head
		}
	}
	return nil
}

// inAnyTail reports whether t occurs past position 0 of any sequence
func inAnyTail(seqs [][]*TypeMetaobject, t *TypeMetaobject) bool {
	for _, s := range seqs {
		for _, u := range s[1:] {
			if u == t {
				return true
			}
		}
	}
	return false
}

// remove drops every occurrence of t from s, preserving order
func remove(s []*TypeMetaobject, t *TypeMetaobject) []*TypeMetaobject {
	out := s[:0]
	for _, u := range s {
		if u != t {
			out = append(out, u)
		}
	}
	return out
}

// describeHeads names the blocked candidates for the failure message
func describeHeads(seqs [][]*TypeMetaobject) string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range seqs {
		if !seen[s[0].name] {
			seen[s[0].name] = true
			names = append(names, s[0].name)
		}
	}
	return strings.Join(names, ", ")
}
