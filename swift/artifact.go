package swift

import "strings"

// Artifact is a generated file: an output path and its source text.
type Artifact struct {
	Path string
	Text string
}

// JoinPath appends file to dir, inserting a "/" only when dir does not
// already end with one. An empty dir yields file unchanged.
func JoinPath(dir, file string) string {
	switch {
	case dir == "":
		return file
	case strings.HasSuffix(dir, "/"):
		return dir + file
	default:
		return dir + "/" + file
	}
}
