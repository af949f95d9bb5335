// Package enumtype holds the validation and impact helpers for enum types.
// The store uses them to guard mutations; the CLI uses them to word
// confirmation prompts before a destructive change.
package enumtype

import (
	"slices"
	"strings"

	"github.com/fluttering/flagctl/internal/domain"
)

// IsNameUnique reports whether no type in existing has name, compared
// case-insensitively. The type whose ID equals excludeID is skipped; pass ""
// to compare against every type. name is not trimmed.
func IsNameUnique(name string, existing []domain.EnumType, excludeID string) bool {
	for _, et := range existing {
		if excludeID != "" && et.ID == excludeID {
			continue
		}
		if strings.EqualFold(et.Name, name) {
			return false
		}
	}
	return true
}

// AreValuesUnique reports whether no two values are equal. Comparison is
// case-sensitive, so "On" and "on" are distinct.
func AreValuesUnique(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

// AffectedFlagCount counts enum flags of the given type across all projects.
func AffectedFlagCount(enumTypeID string, flagsByProject map[string][]domain.Flag) int {
	n := 0
	for _, flags := range flagsByProject {
		for _, f := range flags {
			if f.References(enumTypeID) {
				n++
			}
		}
	}
	return n
}

// AffectedFlagsByValue counts enum flags of the given type, across all
// projects, currently holding value.
func AffectedFlagsByValue(enumTypeID, value string, flagsByProject map[string][]domain.Flag) int {
	n := 0
	for _, flags := range flagsByProject {
		for _, f := range flags {
			if f.References(enumTypeID) && f.EnumValue == value {
				n++
			}
		}
	}
	return n
}

// WouldRemoveUsedValue reports whether any enum flag of the given type holds
// removedValue. It stops at the first match.
func WouldRemoveUsedValue(enumTypeID, removedValue string, flagsByProject map[string][]domain.Flag) bool {
	for _, flags := range flagsByProject {
		for _, f := range flags {
			if f.References(enumTypeID) && f.EnumValue == removedValue {
				return true
			}
		}
	}
	return false
}

// RemovedValues returns the entries of oldValues missing from newValues, in
// oldValues order.
func RemovedValues(oldValues, newValues []string) []string {
	var removed []string
	for _, v := range oldValues {
		if !slices.Contains(newValues, v) {
			removed = append(removed, v)
		}
	}
	return removed
}
