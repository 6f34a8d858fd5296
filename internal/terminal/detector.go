// Package terminal detects whether the current process is attached to an
// interactive terminal or running under a CI/batch environment, so callers
// can decide how chatty stderr output should be.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILD_NUMBER",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

// DetectorOptions forces the interactivity decision one way or the other,
// overriding environment detection.
type DetectorOptions struct {
	ForceInteractive    bool
	ForceNonInteractive bool
}

// Detector reports interactivity facts about the current process.
type Detector interface {
	IsInteractive() bool
	IsTerminal() bool
	IsCIEnvironment() bool
}

type defaultDetector struct {
	options DetectorOptions
}

// NewDetector creates a Detector with the given options.
func NewDetector(options DetectorOptions) Detector {
	return &defaultDetector{options: options}
}

// IsInteractive returns true if the current environment is interactive.
// Explicit options win over CI detection, which wins over terminal detection.
func (d *defaultDetector) IsInteractive() bool {
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}
	if d.IsCIEnvironment() {
		return false
	}
	return d.IsTerminal()
}

// IsTerminal checks if stderr is connected to a terminal. Stdout is left
// out of the decision on purpose: a tool whose stdout is a data stream is
// routinely piped while stderr still faces the user.
func (d *defaultDetector) IsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// IsCIEnvironment checks if the current environment is a CI/CD system.
func (d *defaultDetector) IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		if value := os.Getenv(envVar); value != "" {
			if envVar == "CI" {
				return isCITruthy(value)
			}
			return true
		}
	}
	return false
}

// isCITruthy checks if a CI variable value should be considered "true";
// CI=false or CI=0 does not indicate a CI environment.
func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}
