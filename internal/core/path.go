package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/brettbedarf/roottools"
)

const separator = string(os.PathSeparator)

// JoinPath returns dir and name joined by the platform separator.
// Unlike filepath.Join it does not clean the result, so crawl records show
// paths exactly as they were reached. maxLen <= 0 disables the length check.
func JoinPath(dir, name string, maxLen int) (string, error) {
	var p string
	if strings.HasSuffix(dir, separator) {
		p = dir + name
	} else {
		p = dir + separator + name
	}
	if maxLen > 0 && len(p) > maxLen {
		return "", fmt.Errorf("%w: %d > %d bytes: %.64s...", roottools.ErrPathTooLong, len(p), maxLen, p)
	}
	return p, nil
}

// BaseName returns the final component of path, ignoring trailing separators.
// A path without separators is returned as is.
func BaseName(path string) string {
	trimmed := strings.TrimRight(path, separator)
	if trimmed == "" {
		return ""
	}
	if i := strings.LastIndex(trimmed, separator); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
