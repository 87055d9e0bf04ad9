package project

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen = 120
	maxDeps    = 64
)

// Validate normalizes the resource in place and checks it.
//
// Policy:
//   - Name is trimmed and required (at most 120 runes).
//   - Code is required and kept byte-for-byte.
//   - Dependencies are trimmed; blanks are dropped later by NewBotProject.
func (r *Resource) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxNameLen {
		return fmt.Errorf("name exceeds %d characters", maxNameLen)
	}
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("code is required")
	}
	if len(r.Dependencies) > maxDeps {
		return fmt.Errorf("too many dependencies (max %d)", maxDeps)
	}
	for i, d := range r.Dependencies {
		r.Dependencies[i] = strings.TrimSpace(d)
	}
	return nil
}
