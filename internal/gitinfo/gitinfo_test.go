package gitinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVersionFromDescribe checks the describe-output-to-version conversion,
// including the zero-distance case where no ".post" suffix appears.
func TestVersionFromDescribe(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"v1.2-3-gabcdef\n": "1.2.post3",
		"v2.5\n":           "2.5",
		"v2.5-7-g0123abc":  "2.5.post7",
		"v1.0a2":           "1.0a2",
		"v1.0a2-4-gfeed12": "1.0a2.post4",
		"v10.42-100-gbeef": "10.42.post100",
	}
	for desc, want := range cases {
		require.Equal(t, want, versionFromDescribe(desc), "describe output %q", desc)
	}
}

// TestParseVersion checks extraction of major, minor, prerelease and
// post-release distance from the computed version string.
func TestParseVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		version    string
		major      int
		minor      int
		prerelease string
		number     int
	}{
		{version: "2.5", major: 2, minor: 5},
		{version: "2.5.post7", major: 2, minor: 5, number: 7},
		{version: "1.0a2", major: 1, minor: 0, prerelease: "a2"},
		{version: "1.0b", major: 1, minor: 0, prerelease: "b"},
		{version: "3.1b4.post12", major: 3, minor: 1, prerelease: "b4", number: 12},
	}
	for _, tc := range cases {
		inf := &Info{Version: tc.version}

		require.NoError(t, inf.parseVersion(), "version %q", tc.version)
		require.Equal(t, tc.major, inf.Major)
		require.Equal(t, tc.minor, inf.Minor)
		require.Equal(t, tc.prerelease, inf.Prerelease)
		require.Equal(t, tc.number, inf.Number)
	}
}

// TestParseVersionMalformed ensures a version without extractable
// major.minor fails hard instead of defaulting.
func TestParseVersionMalformed(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"", "garbage", "x1.2", ".post3"} {
		inf := &Info{Version: version}

		err := inf.parseVersion()
		require.ErrorIs(t, err, ErrMalformedVersion, "version %q", version)
	}
}

// TestFillFromLog checks unpacking of the four git log fields and rejection
// of short or garbled output.
func TestFillFromLog(t *testing.T) {
	t.Parallel()

	inf := new(Info)

	out := []byte("0123456789abcdef0123456789abcdef01234567\n2014-03-21 15:00:00 -0400\n1395428400\nPavol Juhas\n")
	require.NoError(t, inf.fillFromLog(out))
	require.Equal(t, "0123456789abcdef0123456789abcdef01234567", inf.Commit)
	require.Equal(t, "2014-03-21 15:00:00 -0400", inf.Date)
	require.EqualValues(t, 1395428400, inf.Timestamp)
	require.Equal(t, "Pavol Juhas", inf.Author)

	// Missing fields.
	err := inf.fillFromLog([]byte("deadbeef\n2014-03-21 15:00:00 -0400\n"))
	require.ErrorIs(t, err, ErrUnexpectedLogOutput)

	// Timestamp is not an integer.
	err = inf.fillFromLog([]byte("deadbeef\n2014-03-21 15:00:00 -0400\nsoon\nSomebody\n"))
	require.ErrorIs(t, err, ErrUnexpectedLogOutput)
}
