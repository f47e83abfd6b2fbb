package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diffpy/liga/internal/gitinfo"
)

// stubRunner answers git describe and log queries with fixed output.
type stubRunner struct {
	describeOut string
	logOut      string
}

func (s stubRunner) Run(_ context.Context, _, _ string, args ...string) ([]byte, error) {
	if args[0] == "describe" {
		return []byte(s.describeOut), nil
	}

	return []byte(s.logOut), nil
}

func stubProvider() *gitinfo.Provider {
	return gitinfo.NewProvider(gitinfo.WithRunner(stubRunner{
		describeOut: "v2.5-7-g0123abc\n",
		logOut: "0123456789abcdef0123456789abcdef01234567\n" +
			"2014-03-21 15:00:00 -0400\n1395428400\nPavol Juhas\n",
	}))
}

// TestRunToStdout renders extracted metadata to the provided writer.
func TestRunToStdout(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: filepath.Join(t.TempDir(), "none.yaml"),
		Provider:   stubProvider(),
		Stdout:     &out,
	})
	require.Error(t, err, "explicitly named missing settings file must fail")

	out.Reset()

	err = Run(context.Background(), &Options{
		Provider: stubProvider(),
		Stdout:   &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "version = 2.5.post7\n")
	require.Contains(t, out.String(), "commit = 0123456789abcdef0123456789abcdef01234567\n")
}

// TestRunWritesStampFile renders metadata into an output file for the
// build system to embed.
func TestRunWritesStampFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "version.json")

	err := Run(context.Background(), &Options{
		Provider: stubProvider(),
		Format:   FormatJSON,
		Output:   path,
	})
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"version": "2.5.post7"`)
}

// TestRunFormatOverride ensures command line options win over defaults and
// "-" forces stdout.
func TestRunFormatOverride(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Provider: stubProvider(),
		Format:   FormatYAML,
		Output:   "-",
		Stdout:   &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "version: 2.5.post7")
}
