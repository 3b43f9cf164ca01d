// Package logging provides debug logging utilities for boxes.
package logging

import (
	"log"
	"strings"
	"sync"
)

// areas holds the set of debug areas enabled via -x debug:<area,area,...>.
// The special name "all" enables every area.
var (
	mu    sync.RWMutex
	areas = map[string]bool{}
)

// EnableArea turns on debug output for name.
func EnableArea(name string) {
	mu.Lock()
	defer mu.Unlock()
	areas[strings.ToLower(name)] = true
}

// EnableAreas parses a comma-separated list, as accepted by
// -x debug:<area,area,...>, and enables each one.
func EnableAreas(csv string) {
	for _, a := range strings.Split(csv, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			EnableArea(a)
		}
	}
}

// AreaEnabled reports whether debug output for area is currently enabled.
func AreaEnabled(area string) bool {
	mu.RLock()
	defer mu.RUnlock()
	if areas["all"] {
		return true
	}
	return areas[strings.ToLower(area)]
}

// Debugf logs a message tagged with area, but only if that area (or "all")
// has been enabled via EnableArea/EnableAreas.
func Debugf(area, format string, args ...any) {
	if !AreaEnabled(area) {
		return
	}
	log.Printf("DEBUG[%s]: "+format, append([]any{area}, args...)...)
}

// Reset clears all enabled areas. Exposed for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	areas = map[string]bool{}
}
