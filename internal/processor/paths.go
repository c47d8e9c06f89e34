package processor

import "strings"

// ExpandHome rewrites a leading home-directory shorthand to an environment
// reference so a generated script stays portable across invocation
// environments: "~/x" becomes "${HOME}/x". Anything else passes through
// untouched; a bare "~" maps to "${HOME}".
func ExpandHome(path string) string {
	switch {
	case path == "~":
		return "${HOME}"
	case strings.HasPrefix(path, "~/"):
		return "${HOME}" + path[1:]
	default:
		return path
	}
}

// quotePath wraps a path in double quotes for shell interpolation when it
// contains whitespace. Double quotes keep ${HOME} references expandable.
func quotePath(path string) string {
	if strings.ContainsAny(path, " \t") {
		return `"` + path + `"`
	}
	return path
}
