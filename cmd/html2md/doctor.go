package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ebooklib/go-html2md/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc   pandocInfo `json:"pandoc"`
	Env      envInfo    `json:"environment"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, pandocPath string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(pandocPath)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(pandocPath string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkPandoc(result, pandocPath)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkPandoc locates the pandoc executable and reads its version.
func checkPandoc(result *doctorResult, pandocPath string) {
	if pandocPath == "" {
		pandocPath = "pandoc"
	}

	resolved, err := exec.LookPath(pandocPath)
	if err != nil {
		result.Errors = append(result.Errors,
			"pandoc not found"+hints.ForPandocMissing())
		return
	}

	result.Pandoc.Found = true
	result.Pandoc.Path = resolved

	out, err := exec.Command(resolved, "--version").Output() // #nosec G204 -- resolved above
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("could not get pandoc version: %v", err))
		return
	}
	if line, _, ok := strings.Cut(string(out), "\n"); ok {
		result.Pandoc.Version = strings.TrimSpace(line)
	}
}

// printDoctorResult writes a human-readable diagnostic report.
func printDoctorResult(w io.Writer, result *doctorResult) {
	fmt.Fprintf(w, "System: %s/%s\n", result.Env.OS, result.Env.Arch)

	if result.Pandoc.Found {
		fmt.Fprintf(w, "Pandoc: %s\n", result.Pandoc.Path)
		if result.Pandoc.Version != "" {
			fmt.Fprintf(w, "Version: %s\n", result.Pandoc.Version)
		}
	} else {
		fmt.Fprintln(w, "Pandoc: not found")
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(w, "Error: %s\n", e)
	}

	switch result.Status {
	case "ready":
		fmt.Fprintln(w, "Status: ready")
	case "warnings":
		fmt.Fprintln(w, "Status: ready (with warnings)")
	case "errors":
		fmt.Fprintln(w, "Status: not ready")
	}
}
