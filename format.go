package squish

import (
	"fmt"
	"strings"
)

// CompressionFormat identifies one compression or archive format.
type CompressionFormat int

const (
	// Gzip is the gzip single-stream format (.gz).
	Gzip CompressionFormat = iota
	// Bzip is the bzip2 format (.bz, .bz2).
	Bzip
	// Bzip3 is the bzip3 format (.bz3).
	Bzip3
	// Lz4 is the lz4 frame format (.lz4).
	Lz4
	// Xz is the xz container format (.xz).
	Xz
	// Lzma is the legacy lzma-alone format (.lzma).
	Lzma
	// Lzip is the lzip container format (.lz).
	Lzip
	// Snappy is the snappy framing format (.sz).
	Snappy
	// Tar is the tar archive format (.tar, and the t* aliases).
	Tar
	// Zstd is the zstandard format (.zst).
	Zstd
	// Zip is the zip archive format (.zip).
	Zip
	// Rar is the rar archive format (.rar), decompression only.
	Rar
	// SevenZip is the 7-zip archive format (.7z).
	SevenZip
	// Brotli is the brotli format (.br).
	Brotli
)

// IsArchive reports whether the format bundles multiple files with
// directory structure, as opposed to compressing a single stream.
func (f CompressionFormat) IsArchive() bool {
	// Every format is listed explicitly and the default panics, so
	// adding a format without classifying it here fails loudly.
	switch f {
	case Tar, Zip, Rar, SevenZip:
		return true
	case Gzip, Bzip, Bzip3, Lz4, Xz, Lzma, Lzip, Snappy, Zstd, Brotli:
		return false
	default:
		panic(fmt.Sprintf("squish: unclassified compression format %d", int(f)))
	}
}

// String returns the canonical short extension for the format.
func (f CompressionFormat) String() string {
	switch f {
	case Gzip:
		return "gz"
	case Bzip:
		return "bz2"
	case Bzip3:
		return "bz3"
	case Lz4:
		return "lz4"
	case Xz:
		return "xz"
	case Lzma:
		return "lzma"
	case Lzip:
		return "lz"
	case Snappy:
		return "sz"
	case Tar:
		return "tar"
	case Zstd:
		return "zst"
	case Zip:
		return "zip"
	case Rar:
		return "rar"
	case SevenZip:
		return "7z"
	case Brotli:
		return "br"
	default:
		panic(fmt.Sprintf("squish: unnamed compression format %d", int(f)))
	}
}

// extensionFormats maps every recognized extension token, including
// multi-format aliases and bare synonyms, to its ordered format list
// (outermost first). Lookup is case-sensitive and nothing is guessed.
var extensionFormats = map[string][]CompressionFormat{
	"tar":   {Tar},
	"tgz":   {Tar, Gzip},
	"tbz":   {Tar, Bzip},
	"tbz2":  {Tar, Bzip},
	"tbz3":  {Tar, Bzip3},
	"tlz4":  {Tar, Lz4},
	"txz":   {Tar, Xz},
	"tlzma": {Tar, Lzma},
	"tlz":   {Tar, Lzip},
	"tsz":   {Tar, Snappy},
	"tzst":  {Tar, Zstd},
	"zip":   {Zip},
	"bz":    {Bzip},
	"bz2":   {Bzip},
	"bz3":   {Bzip3},
	"gz":    {Gzip},
	"lz4":   {Lz4},
	"xz":    {Xz},
	"lzma":  {Lzma},
	"lz":    {Lzip},
	"sz":    {Snappy},
	"zst":   {Zstd},
	"rar":   {Rar},
	"7z":    {SevenZip},
	"br":    {Brotli},
}

// SupportedExtensions lists the single extension tokens squish accepts.
var SupportedExtensions = buildSupportedExtensions()

// SupportedAliases lists the multi-format alias tokens squish accepts.
var SupportedAliases = []string{"tgz", "tbz", "tlz4", "txz", "tlzma", "tsz", "tzst", "tlz"}

func buildSupportedExtensions() []string {
	exts := []string{"tar", "zip", "bz", "bz2", "bz3", "gz", "lz4", "xz", "lzma", "lz", "sz", "zst"}
	if rarSupported {
		exts = append(exts, "rar")
	}
	return append(exts, "7z", "br")
}

// PrettySupportedExtensions returns the extension list formatted for
// help and error text.
func PrettySupportedExtensions() string {
	return strings.Join(SupportedExtensions, ", ")
}

// PrettySupportedAliases returns the alias list formatted for help and
// error text.
func PrettySupportedAliases() string {
	return strings.Join(SupportedAliases, ", ")
}

// LookupExtension maps a single extension or alias token to an
// Extension. The second return is false for unknown tokens.
func LookupExtension(token string) (Extension, bool) {
	if token == "rar" && !rarSupported {
		return Extension{}, false
	}
	formats, ok := extensionFormats[token]
	if !ok {
		return Extension{}, false
	}
	return NewExtension(formats, token), true
}

// isKnownToken reports whether token is a member of the supported
// extension or alias lists. Unlike LookupExtension it does not cover
// the bare synonyms that only exist in the lookup table.
func isKnownToken(token string) bool {
	for _, ext := range SupportedExtensions {
		if token == ext {
			return true
		}
	}
	for _, alias := range SupportedAliases {
		if token == alias {
			return true
		}
	}
	return false
}
