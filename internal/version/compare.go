package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckJournalCompatibility checks if the engine can serve a journal database
// stamped with the given version. Returns nil if compatible, error with
// details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Engine 1.2.0, Journal 1.2.0 -> OK (exact match)
//   - Engine 1.2.1, Journal 1.2.0 -> OK (patch differs)
//   - Engine 1.3.0, Journal 1.2.0 -> ERROR (minor differs)
//   - Engine 2.0.0, Journal 1.2.0 -> ERROR (major differs)
//   - Engine main, Journal 1.2.0 -> OK (dev build, skip check)
//   - Engine 1.2.0, Journal main -> OK (dev build, skip check)
func CheckJournalCompatibility(engineVersion, journalVersion string) error {
	// Strip 'v' prefix if present for consistency
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	journalVersion = strings.TrimPrefix(journalVersion, "v")

	// Skip version check for "main" (development builds)
	if engineVersion == "main" || journalVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	journalSemver, err := semver.NewVersion(journalVersion)
	if err != nil {
		return fmt.Errorf("invalid journal version '%s': %w", journalVersion, err)
	}

	if engineSemver.Major() != journalSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but journal was written by %d.x.x",
			engineSemver.Major(), journalSemver.Major())
	}

	if engineSemver.Minor() != journalSemver.Minor() {
		return fmt.Errorf("minor version mismatch: engine is %d.%d.x but journal was written by %d.%d.x",
			engineSemver.Major(), engineSemver.Minor(),
			journalSemver.Major(), journalSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
