// Package gitinfo extracts version metadata from git history.
//
// A Provider runs `git describe` against tags of the form v<digit>... and
// `git log -1` for the HEAD commit, parses the output into an Info record
// and memoizes it for the remainder of the process. The build system and
// the documentation generator both read their version strings from here.
package gitinfo
