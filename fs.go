package squish

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ConflictDecision is what the policy collaborator decided to do about
// an output path that already exists.
type ConflictDecision int

const (
	// DecisionCancel aborts the whole operation.
	DecisionCancel ConflictDecision = iota
	// DecisionOverwrite removes the existing file or directory first.
	DecisionOverwrite
	// DecisionRename picks a fresh non-colliding name instead.
	DecisionRename
	// DecisionMerge keeps the path as-is so the caller can merge into it.
	DecisionMerge
)

// QuestionPolicy controls how conflict decisions are obtained.
type QuestionPolicy int

const (
	// PolicyAsk defers to the interactive prompt.
	PolicyAsk QuestionPolicy = iota
	// PolicyAlwaysYes answers every question with yes (overwrite).
	PolicyAlwaysYes
	// PolicyAlwaysNo answers every question with no (cancel).
	PolicyAlwaysNo
)

// QuestionAction is the operation context a conflict question is asked
// in; prompts word themselves differently for each.
type QuestionAction int

const (
	// ActionCompress is a conflict while creating a compressed output.
	ActionCompress QuestionAction = iota
	// ActionDecompress is a conflict while extracting.
	ActionDecompress
)

// DecideFunc produces a ConflictDecision for an existing path. The
// implementation is external to this package: the CLI prompts the user,
// tests stub it out.
type DecideFunc func(path string, policy QuestionPolicy, action QuestionAction) (ConflictDecision, error)

// IsStdinPath reports whether path uses the "-" stdin convention.
func IsStdinPath(path string) bool {
	return path == "-"
}

// ResolvePathConflict checks whether path already exists and, if so,
// asks decide what to do about it.
//
// The returned ok is false when the user cancelled the operation; that
// is not an error and must be propagated as an abort. Otherwise the
// returned path is free to be written to: either the input path (no
// conflict, overwrite after deletion, or merge) or a fresh renamed
// path with the original left untouched.
//
// The exists-check and the following action are not atomic; a
// concurrent actor touching the same path can race this. That is
// accepted for a single-process command-line tool.
func ResolvePathConflict(path string, decide DecideFunc, policy QuestionPolicy, action QuestionAction) (string, bool, error) {
	if _, err := os.Stat(path); err != nil {
		return path, true, nil
	}

	decision, err := decide(path, policy, action)
	if err != nil {
		return "", false, err
	}
	switch decision {
	case DecisionCancel:
		return "", false, nil
	case DecisionOverwrite:
		if err := RemoveFileOrDir(path); err != nil {
			return "", false, err
		}
		return path, true, nil
	case DecisionRename:
		return RenameForAvailableName(path), true, nil
	case DecisionMerge:
		return path, true, nil
	default:
		return "", false, fmt.Errorf("squish: unknown conflict decision %d", int(decision))
	}
}

// RemoveFileOrDir deletes path, recursively if it is a directory. A
// path that does not exist is left alone.
func RemoveFileOrDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// RenameForAvailableName derives a path in the same directory that does
// not exist yet, by incrementing a numeric suffix until the name is
// free.
func RenameForAvailableName(path string) string {
	renamed := incrementFileName(path)
	for {
		if _, err := os.Stat(renamed); err != nil {
			return renamed
		}
		renamed = incrementFileName(renamed)
	}
}

// incrementFileName rewrites "file.txt" to "file_1.txt" and
// "file_1.txt" to "file_2.txt". A malformed numeric suffix counts as 0.
func incrementFileName(path string) string {
	dir, file := filepath.Split(path)
	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(file, ext)

	if i := strings.LastIndexByte(stem, '_'); i >= 0 && allDigits(stem[i+1:]) {
		n, err := strconv.ParseUint(stem[i+1:], 10, 32)
		if err != nil {
			n = 0
		}
		stem = fmt.Sprintf("%s_%d", stem[:i], n+1)
	} else {
		stem += "_1"
	}

	return dir + stem + ext
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CreateDirIfMissing creates path and any missing parents. Creating a
// directory is an important change to the filesystem, so the user is
// always informed.
func CreateDirIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	Infof("directory %s created", path)
	return nil
}

// ChdirSameDirAs changes the working directory to the one containing
// path and returns the previous working directory so the caller can
// change back. Root-level paths with no parent fail with
// ErrMissingParent.
func ChdirSameDirAs(path string) (string, error) {
	previous, err := os.Getwd()
	if err != nil {
		return "", err
	}

	parent := filepath.Dir(path)
	if parent == path {
		return "", ErrMissingParent
	}
	if err := os.Chdir(parent); err != nil {
		return "", err
	}
	return previous, nil
}

// RenameRecursively moves the contents of the src directory into dst,
// descending into subdirectories that exist on both sides. Both
// directories must already exist.
func RenameRecursively(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil || !srcInfo.IsDir() {
		return ErrMissingRenameTarget
	}
	if _, err := os.Stat(dst); err != nil {
		return ErrMissingRenameTarget
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := RenameRecursively(from, to); err != nil {
				return err
			}
			continue
		}
		if err := os.Rename(from, to); err != nil {
			return err
		}
	}
	return nil
}
