// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

// Package powerpoint drives a real PowerPoint instance over COM. On
// non-Windows platforms only this stub is compiled; the rest of the
// module (classification, polling, journal) builds and tests everywhere.
package powerpoint

import (
	"errors"

	"github.com/pdiddy/deckport/internal/automation"
)

// ErrUnsupportedPlatform is returned by Connect where no COM runtime exists.
var ErrUnsupportedPlatform = errors.New("presentation automation requires Windows")

// Connect fails on non-Windows platforms.
func Connect() (automation.Application, error) {
	return nil, ErrUnsupportedPlatform
}
