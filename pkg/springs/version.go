// Package springs counts spring arrangements for condition records.
//
// Version: 0.3.0
//
// A condition record is a row of springs, each operational, damaged or
// unknown, together with the lengths of the contiguous damaged runs that the
// row must contain, in order. The package counts how many ways the unknown
// springs can be resolved so that the row matches its run lengths. Counts are
// exact and arrangements are never materialized.
//
// Three interchangeable strategies are provided: a memoized recursion over
// suffix pairs (the reference), a bottom-up table, and an automaton walk.
package springs

// Version represents the current version of the springs package.
const Version = "0.3.0"

// VersionInfo provides detailed version information.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns detailed version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GoVersion: "1.25+",
	}
}
