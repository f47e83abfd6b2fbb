package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/diffpy/liga/internal/gitinfo"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// errUnknownFormat is returned for formats other than text, json and yaml.
var errUnknownFormat = errors.New("unknown output format")

// Render serializes the version metadata in the requested format.
// The text form is key = value lines suitable for make fragments and
// quick inspection; json and yaml carry the full record for tooling.
func Render(info *gitinfo.Info, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return renderText(info), nil
	case FormatJSON:
		payload, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal version metadata: %w", err)
		}

		return append(payload, '\n'), nil
	case FormatYAML:
		payload, err := yaml.Marshal(info)
		if err != nil {
			return nil, fmt.Errorf("marshal version metadata: %w", err)
		}

		return payload, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

func renderText(info *gitinfo.Info) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "version = %s\n", info.Version)
	fmt.Fprintf(&b, "major = %d\n", info.Major)
	fmt.Fprintf(&b, "minor = %d\n", info.Minor)

	if info.Prerelease != "" {
		fmt.Fprintf(&b, "prerelease = %s\n", info.Prerelease)
	}

	fmt.Fprintf(&b, "number = %d\n", info.Number)
	fmt.Fprintf(&b, "commit = %s\n", info.Commit)
	fmt.Fprintf(&b, "date = %s\n", info.Date)
	fmt.Fprintf(&b, "timestamp = %d\n", info.Timestamp)
	fmt.Fprintf(&b, "author = %s\n", info.Author)

	return []byte(b.String())
}
