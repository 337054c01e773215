package model

import "strings"

// Protected registry members. They are seeded with the defaults and can be
// neither deleted nor renamed.
const (
	ProtectedCategory = "Other"
	ProtectedPriority = "Default"
)

func DefaultCategories() []string {
	return []string{"Personal", ProtectedCategory}
}

func DefaultPriorities() []string {
	return []string{ProtectedPriority, "High", "Medium", "Low"}
}

// IsProtectedCategory is an exact match; IsProtectedPriority ignores case.
func IsProtectedCategory(name string) bool {
	return name == ProtectedCategory
}

func IsProtectedPriority(name string) bool {
	return strings.EqualFold(name, ProtectedPriority)
}

// EnsureRegistry seeds defaults into an empty registry and re-adds the
// protected member when a loaded registry lacks it.
func EnsureRegistry(names []string, defaults []string, protected string) []string {
	if len(names) == 0 {
		return append([]string(nil), defaults...)
	}
	out := make([]string, 0, len(names)+1)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	if !seen[protected] {
		out = append(out, protected)
	}
	return out
}

func IndexOf(names []string, target string) int {
	for i, n := range names {
		if n == target {
			return i
		}
	}
	return -1
}

// IndexOfFold is IndexOf with case-insensitive comparison.
func IndexOfFold(names []string, target string) int {
	for i, n := range names {
		if strings.EqualFold(n, target) {
			return i
		}
	}
	return -1
}
