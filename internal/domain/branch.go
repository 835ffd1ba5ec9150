package domain

import "strings"

// Branches a note can be filed under. "Other" is the catch-all for
// disciplines outside the list.
var Branches = []string{
	"Computer Science",
	"Mechanical",
	"Electrical",
	"Electronics",
	"Civil",
	"Chemical",
	"Other",
}

func ValidBranch(branch string) bool {
	for _, b := range Branches {
		if strings.EqualFold(strings.TrimSpace(branch), b) {
			return true
		}
	}
	return false
}
