// utils.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file contains general utility functions.

package crossplay

// Remove the first occurrence of a given rune from a slice of runes,
// returning a new slice.
func RemoveRune(s []rune, r rune) []rune {
	// Preallocate the result slice with the same length as the input slice.
	// This is the maximum possible size it could be if the rune is absent.
	result := make([]rune, 0, len(s))
	removed := false
	for _, runeValue := range s {
		if runeValue == r && !removed {
			removed = true
			continue
		}
		result = append(result, runeValue)
	}
	return result
}

// Return true if a slice of runes contains a given rune.
func ContainsRune(s []rune, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
