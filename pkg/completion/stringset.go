// Package completion provides an ordered string set with prefix completion.
package completion

import (
	"sort"
	"strings"
)

// StringSet keeps its members sorted so that all strings sharing a prefix
// form one contiguous run.
type StringSet struct {
	members []string
}

func NewStringSet(members ...string) *StringSet {
	s := &StringSet{}
	for _, m := range members {
		s.Insert(m)
	}
	return s
}

// Insert adds member and reports whether it was not present before.
func (s *StringSet) Insert(member string) bool {
	i := sort.SearchStrings(s.members, member)
	if i < len(s.members) && s.members[i] == member {
		return false
	}
	s.members = append(s.members, "")
	copy(s.members[i+1:], s.members[i:])
	s.members[i] = member
	return true
}

// Erase removes member and reports whether it was present.
func (s *StringSet) Erase(member string) bool {
	i := sort.SearchStrings(s.members, member)
	if i >= len(s.members) || s.members[i] != member {
		return false
	}
	s.members = append(s.members[:i], s.members[i+1:]...)
	return true
}

func (s *StringSet) Contains(member string) bool {
	i := sort.SearchStrings(s.members, member)
	return i < len(s.members) && s.members[i] == member
}

func (s *StringSet) Len() int {
	return len(s.members)
}

// Members returns a sorted copy of the set.
func (s *StringSet) Members() []string {
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}

// Completions returns every member that has input as a prefix, sorted.
func (s *StringSet) Completions(input string) []string {
	lo, hi := s.prefixRange(input)
	out := make([]string, hi-lo)
	copy(out, s.members[lo:hi])
	return out
}

func (s *StringSet) NumberOfCompletions(input string) int {
	lo, hi := s.prefixRange(input)
	return hi - lo
}

// Complete returns input unchanged when nothing matches, the sole match
// when exactly one member matches, and otherwise the longest prefix
// common to all matches.
func (s *StringSet) Complete(input string) string {
	lo, hi := s.prefixRange(input)
	switch hi - lo {
	case 0:
		return input
	case 1:
		return s.members[lo]
	}
	// members are sorted, so the common prefix of the whole run is the
	// common prefix of its first and last elements
	return commonPrefix(s.members[lo], s.members[hi-1])
}

func (s *StringSet) prefixRange(prefix string) (int, int) {
	lo := sort.SearchStrings(s.members, prefix)
	hi := lo + sort.Search(len(s.members)-lo, func(i int) bool {
		return !strings.HasPrefix(s.members[lo+i], prefix)
	})
	return lo, hi
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
