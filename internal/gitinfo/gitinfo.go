package gitinfo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern splits a computed version string into major, minor, an
// optional prerelease tag ("a1", "b2") and an optional post-release distance.
var versionPattern = regexp.MustCompile(`(?m)^(\d+)\.(\d+)([ab]\d*)?(?:\.post(\d+))?`)

var (
	// ErrDescribeFailed is returned when the describe query keeps exiting
	// with a non-zero status, typically outside a git checkout or when no
	// v-tag is reachable from HEAD.
	ErrDescribeFailed = errors.New("describe query failed")
	// ErrMalformedVersion is returned when the computed version string does
	// not have the major.minor[prerelease][.postN] shape.
	ErrMalformedVersion = errors.New("malformed version string")
	// ErrUnexpectedLogOutput is returned when `git log -1` does not yield
	// the four expected fields.
	ErrUnexpectedLogOutput = errors.New("unexpected git log output")
)

// Info holds version metadata extracted from git records.
type Info struct {
	// Version is the nearest v-tag with the commit distance appended as a
	// ".post" suffix, e.g. "2.5.post7", or just the tag body on a tagged commit.
	Version string `json:"version" yaml:"version"`
	// Commit is the full hash of the HEAD commit.
	Commit string `json:"commit" yaml:"commit"`
	// Date is the ISO-8601 author date of the HEAD commit.
	Date string `json:"date" yaml:"date"`
	// Timestamp is the author date as Unix epoch seconds.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
	// Author is the name of the HEAD commit's author.
	Author string `json:"author" yaml:"author"`
	// Major and Minor are parsed from Version.
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	// Prerelease is the alpha/beta marker embedded after the minor version,
	// empty for final releases.
	Prerelease string `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
	// Number is the post-release distance from the nearest tag, 0 on a
	// tagged commit.
	Number int `json:"number" yaml:"number"`
}

// versionFromDescribe converts `git describe` output into a version string:
// the first two dash-separated fields joined with ".post" and the leading "v"
// stripped. "v1.2-3-gabcdef" becomes "1.2.post3"; a bare "v2.5" stays "2.5".
func versionFromDescribe(desc string) string {
	fields := strings.Split(strings.TrimSpace(desc), "-")
	if len(fields) > 2 {
		fields = fields[:2]
	}

	return strings.TrimPrefix(strings.Join(fields, ".post"), "v")
}

// fillFromLog populates the commit fields from `git log -1` output, which
// carries exactly four newline-separated values: hash, ISO author date,
// epoch seconds and author name.
func (inf *Info) fillFromLog(out []byte) error {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		return fmt.Errorf("%w: want 4 fields, got %d", ErrUnexpectedLogOutput, len(lines))
	}

	inf.Commit = strings.TrimSpace(lines[0])
	inf.Date = strings.TrimSpace(lines[1])
	inf.Author = strings.TrimSpace(lines[3])

	ts, err := strconv.ParseInt(strings.TrimSpace(lines[2]), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp: %v", ErrUnexpectedLogOutput, err)
	}

	inf.Timestamp = ts

	return nil
}

// parseVersion extracts Major, Minor, Prerelease and Number from Version.
// A version that does not match the expected shape is a hard error; Major
// and Minor are never guessed or defaulted.
func (inf *Info) parseVersion() error {
	mx := versionPattern.FindStringSubmatch(inf.Version)
	if mx == nil {
		return fmt.Errorf("%w: %q", ErrMalformedVersion, inf.Version)
	}

	major, err := strconv.Atoi(mx[1])
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformedVersion, inf.Version, err)
	}

	minor, err := strconv.Atoi(mx[2])
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformedVersion, inf.Version, err)
	}

	inf.Major = major
	inf.Minor = minor
	inf.Prerelease = mx[3]

	inf.Number = 0
	if mx[4] != "" {
		// The post-release distance matched \d+, so this cannot fail short
		// of an absurdly long suffix.
		n, err := strconv.Atoi(mx[4])
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrMalformedVersion, inf.Version, err)
		}

		inf.Number = n
	}

	return nil
}
