// Package ui describes the screens of the application. Every screen is a pure
// function from nothing to content; prediction and storage happen behind the
// API the screens post to.
package ui

import (
	"strings"

	"loanchecker/pkg/serrors"
)

// Screen is one of the application screens.
type Screen int

const (
	Overview Screen = iota
	UserGuide
	SingleCheck
	BatchCheck
	Feedback
)

var screenSlugs = [...]string{ //nolint: gochecknoglobals
	Overview:    "overview",
	UserGuide:   "user-guide",
	SingleCheck: "single-check",
	BatchCheck:  "batch-check",
	Feedback:    "feedback",
}

var screenTitles = [...]string{ //nolint: gochecknoglobals
	Overview:    "Overview",
	UserGuide:   "User Guide",
	SingleCheck: "Single Check",
	BatchCheck:  "Batch Check",
	Feedback:    "Feedback",
}

// Screens lists every screen in navigation order.
func Screens() []Screen {
	return []Screen{Overview, UserGuide, SingleCheck, BatchCheck, Feedback}
}

func (s Screen) valid() bool {
	return s >= Overview && s <= Feedback
}

// Slug is the URL path segment of the screen.
func (s Screen) Slug() string {
	if !s.valid() {
		return ""
	}

	return screenSlugs[s]
}

// Title is the navigation label of the screen.
func (s Screen) Title() string {
	if !s.valid() {
		return ""
	}

	return screenTitles[s]
}

func (s Screen) String() string {
	return s.Slug()
}

// ParseScreen resolves a slug (case-insensitive, "_" and "-" interchangeable).
// An empty slug is the overview.
func ParseScreen(slug string) (Screen, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(slug)), "_", "-")
	if normalized == "" {
		return Overview, nil
	}
	for _, s := range Screens() {
		if screenSlugs[s] == normalized {
			return s, nil
		}
	}

	return 0, serrors.With(serrors.ErrNotFound, "unknown screen %q", slug)
}
