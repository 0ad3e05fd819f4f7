package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// These variables are set during build time
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Output formats accepted by Render
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// BuildInfo contains build and runtime information
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`

	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`

	Deps []Module `json:"deps,omitempty" yaml:"deps,omitempty"`
}

// Module represents a Go module dependency
type Module struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// GetBuildInfo returns build information for the running binary
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			info.Deps = append(info.Deps, Module{Path: dep.Path, Version: dep.Version})
		}
		if info.GitCommit == "unknown" {
			for _, setting := range bi.Settings {
				if setting.Key == "vcs.revision" {
					info.GitCommit = setting.Value
				}
			}
		}
	}

	return info
}

// Render formats info in the given format. Text output lists dependencies
// only when full is set; JSON and YAML always carry everything.
func Render(info BuildInfo, format string, full bool) (string, error) {
	switch format {
	case "", FormatText:
		if !full {
			return info.Version, nil
		}
		return renderText(info), nil
	case FormatJSON:
		b, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling version as json: %w", err)
		}
		return string(b), nil
	case FormatYAML:
		b, err := yaml.Marshal(info)
		if err != nil {
			return "", fmt.Errorf("marshaling version as yaml: %w", err)
		}
		return strings.TrimSuffix(string(b), "\n"), nil
	default:
		return "", fmt.Errorf("unsupported version format %q: must be one of [text json yaml]", format)
	}
}

func renderText(info BuildInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "treepp %s\n", info.Version)
	b.WriteString("========================================\n\n")
	fmt.Fprintf(&b, "  Build Date:   %s\n", info.BuildDate)
	fmt.Fprintf(&b, "  Commit:       %s\n", info.GitCommit)
	fmt.Fprintf(&b, "  Go Version:   %s\n", info.GoVersion)
	fmt.Fprintf(&b, "  Platform:     %s\n", info.Platform)

	if len(info.Deps) > 0 {
		b.WriteString("\nDependencies:\n")
		for _, dep := range info.Deps {
			fmt.Fprintf(&b, "  - %s@%s\n", dep.Path, dep.Version)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
