// Package squish identifies which stacked compression and archive
// transformations apply to a file, and resolves naming conflicts when
// writing output files.
//
// A filename like "file.tar.gz" carries a chain of transformations;
// squish parses it into an ordered extension chain ([tar, gz]),
// enforcing that an archive format like tar or zip only appears as the
// outermost layer. The same chain representation is produced from
// --format style strings and, when a filename is uninformative, from
// magic-byte sniffing of the file content.
//
// # Quick start
//
//	stem, chain, err := squish.ParseFilename("backup.tar.zst")
//	if err != nil {
//	    // archive extension out of place
//	}
//	for _, format := range squish.Flatten(chain) {
//	    // Tar, then Zstd
//	}
//
// Before writing an output file, resolve conflicts against a policy:
//
//	out, ok, err := squish.ResolvePathConflict(path, decide, policy, action)
//
// ok is false when the user cancelled; a rename decision yields a
// fresh name like "file_1.txt" that does not collide.
//
// # Formats
//
// Supported extensions: tar, zip, bz, bz2, bz3, gz, lz4, xz, lzma, lz,
// sz, zst, rar, 7z, br. Aliases such as tgz expand to multi-format
// chains ([tar, gz]). Stream codecs are provided for every
// non-archive format except bzip3, which has no Go implementation;
// rar and 7z are extraction-only.
package squish
