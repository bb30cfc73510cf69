package squish

import "strings"

// SuggestArchivePath proposes a corrected output path when the user
// tried to compress into a non-archive format without an archive
// wrapper, for error message purposes. It inserts suggestedExt (with
// its leading dot, e.g. ".tar") before the first recognized extension
// in path.
//
// SuggestArchivePath("file.bz.xz", ".tar") returns "file.tar.bz.xz".
// The second return is false when no recognized extension is found.
func SuggestArchivePath(path, suggestedExt string) (string, bool) {
	rest := path
	insertAt := 0

	for {
		pos := strings.IndexByte(rest, '.')
		if pos < 0 {
			return "", false
		}
		rest = rest[pos+1:]
		insertAt += pos + 1

		// Clip to the segment before the next dot, if any.
		segment := rest
		if i := strings.IndexByte(rest, '.'); i >= 0 {
			segment = rest[:i]
		}

		if isKnownToken(segment) {
			return path[:insertAt-1] + suggestedExt + path[insertAt-1:], true
		}
	}
}
