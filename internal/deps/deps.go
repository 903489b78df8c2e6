// Package deps reports which external binaries better can run.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary better relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckAlternatives reports a single status for a set of interchangeable
// commands. The first command found on PATH wins.
func CheckAlternatives(name, description string, commands []string) Status {
	status := Status{Name: name, Description: strings.TrimSpace(description)}
	if len(commands) == 0 {
		status.Detail = "command not configured"
		return status
	}
	for _, cmd := range commands {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		if _, err := exec.LookPath(cmd); err == nil {
			status.Command = cmd
			status.Available = true
			return status
		}
	}
	status.Command = strings.Join(commands, ", ")
	status.Detail = "none of the candidates found"
	return status
}
