package squish

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Extension is one filename extension token together with the ordered
// formats it stands for. Aliases such as "tgz" carry more than one
// format; the order is outermost first.
type Extension struct {
	formats []CompressionFormat
	display string
}

// NewExtension builds an Extension from a non-empty format list and the
// literal token the user wrote. It panics on an empty format list;
// every construction site goes through the catalog, which never
// produces one.
func NewExtension(formats []CompressionFormat, display string) Extension {
	if len(formats) == 0 {
		panic("squish: extension with empty format list")
	}
	return Extension{formats: formats, display: display}
}

// Formats returns the ordered format list, outermost first.
func (e Extension) Formats() []CompressionFormat {
	return e.formats
}

// IsArchive reports whether the outermost format is an archive format.
func (e Extension) IsArchive() bool {
	return e.formats[0].IsArchive()
}

// String returns the token as the user wrote it, e.g. "tgz".
func (e Extension) String() string {
	return e.display
}

// Flatten concatenates the format lists of a chain of extensions into
// the linear pipeline of codecs to apply, outermost first.
func Flatten(extensions []Extension) []CompressionFormat {
	var formats []CompressionFormat
	for _, ext := range extensions {
		formats = append(formats, ext.formats...)
	}
	return formats
}

// SplitFirst flattens the chain and separates the first format from the
// rest. Command handlers use it to peel the archive layer off the
// compressor stack. Panics on an empty chain.
func SplitFirst(extensions []Extension) (CompressionFormat, []CompressionFormat) {
	formats := Flatten(extensions)
	return formats[0], formats[1:]
}

// splitExtensionAtEnd splits the last ".token" segment off name if the
// token is a recognized extension. Remainders of "", "." and ".." are
// not split further so dotfiles keep their names.
func splitExtensionAtEnd(name string) (string, Extension, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", Extension{}, false
	}
	rest, token := name[:i], name[i+1:]
	switch rest {
	case "", ".", "..":
		return "", Extension{}, false
	}
	ext, ok := LookupExtension(token)
	if !ok {
		return "", Extension{}, false
	}
	return rest, ext, true
}

// ParseFilename peels the chain of recognized extensions off the final
// path component and returns the remaining stem path together with the
// chain, outermost first. An empty chain is not an error; an archive
// extension anywhere but the outermost position is.
//
// If the trimmed stem is itself a recognized token, a warning is
// emitted: the user probably meant it as an extension.
func ParseFilename(path string) (string, []Extension, error) {
	dir, name := filepath.Split(path)

	var chain []Extension
	for {
		rest, ext, ok := splitExtensionAtEnd(name)
		if !ok {
			break
		}
		name = rest
		chain = append([]Extension{ext}, chain...)
		if chain[0].IsArchive() {
			// One lookahead split only: a recognized extension further
			// left means the archive layer is out of place.
			if _, misplaced, ok := splitExtensionAtEnd(name); ok {
				return "", nil, archiveMisplacedError(path, chain[0], misplaced)
			}
			break
		}
	}

	if stem := strings.Trim(name, "."); isKnownToken(stem) {
		Warningf("received a file with name '%s', but %s was expected as the extension", stem, stem)
	}

	return dir + name, chain, nil
}

// ExtensionsFromPath is ParseFilename without the stem.
func ExtensionsFromPath(path string) ([]Extension, error) {
	_, chain, err := ParseFilename(path)
	return chain, err
}

// ParseFormatFlag decodes a dot-separated format string such as
// "tar.gz" into an extension chain. Empty segments are tolerated, so
// leading, trailing and doubled dots are fine; unknown segments and an
// empty result are hard errors.
func ParseFormatFlag(input string) ([]Extension, error) {
	var chain []Extension
	for _, token := range strings.Split(input, ".") {
		if token == "" {
			continue
		}
		ext, ok := LookupExtension(token)
		if !ok {
			return nil, &InvalidFormatError{
				Text:   input,
				Reason: fmt.Sprintf("unsupported extension '%s'", token),
			}
		}
		chain = append(chain, ext)
	}
	if len(chain) == 0 {
		return nil, &InvalidFormatError{
			Text:   input,
			Reason: "parsing got an empty list of extensions",
		}
	}
	return chain, nil
}

func archiveMisplacedError(path string, archive, misplaced Extension) error {
	err := &UsageError{Title: "file extensions are invalid for operation"}
	err.Detail(fmt.Sprintf(
		"the archive extension '.%s' can only be placed at the start of the extension list", archive))
	if slices.Equal(misplaced.formats, archive.formats) {
		err.Detail(fmt.Sprintf("file '%s' contains '.%s' and '.%s'", path, misplaced, archive))
	}
	err.Hint("you can use --format to specify what format to use, examples:")
	err.Hint("  squish compress file.zip.zip file --format zip")
	err.Hint("  squish decompress file --format zst")
	err.Hint("  squish list archive --format tar.gz")
	return err
}
