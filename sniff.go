package squish

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// sniffLen bounds how much of a file is read for signature matching.
// 270 bytes is enough for the deepest signature (tar at offset 257).
const sniffLen = 270

// signature matchers. Each one checks an exact byte pattern against a
// possibly short prefix buffer.
// Source: https://en.wikipedia.org/wiki/List_of_file_signatures

func isZipSig(buf []byte) bool {
	return len(buf) >= 4 &&
		bytes.Equal(buf[:2], []byte{0x50, 0x4B}) &&
		(bytes.Equal(buf[2:4], []byte{0x03, 0x04}) ||
			bytes.Equal(buf[2:4], []byte{0x05, 0x06}) ||
			bytes.Equal(buf[2:4], []byte{0x07, 0x08}))
}

func isTarSig(buf []byte) bool {
	return len(buf) > 261 && bytes.Equal(buf[257:262], []byte("ustar"))
}

func isGzipSig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0x1F, 0x8B, 0x08})
}

func isBzip2Sig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0x42, 0x5A, 0x68})
}

func isBzip3Sig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte("BZ3v1"))
}

func isLzmaSig(buf []byte) bool {
	return len(buf) >= 14 && buf[0] == 0x5D && (buf[12] == 0x00 || buf[12] == 0xFF) && buf[13] == 0x00
}

func isXzSig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00})
}

func isLzipSig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0x4C, 0x5A, 0x49, 0x50})
}

func isLz4Sig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0x04, 0x22, 0x4D, 0x18})
}

func isSnappySig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0xFF, 0x06, 0x00, 0x00, 0x73, 0x4E, 0x61, 0x50, 0x70, 0x59})
}

func isZstdSig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0x28, 0xB5, 0x2F, 0xFD})
}

func isRarSig(buf []byte) bool {
	// RAR 4.x signature is 7 bytes ending in 0x00, RAR 5.0 is 8 bytes
	// ending in 0x01 0x00. https://www.rarlab.com/technote.htm#rarsign
	return len(buf) >= 7 &&
		bytes.HasPrefix(buf, []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07}) &&
		(buf[6] == 0x00 || (len(buf) >= 8 && buf[6] == 0x01 && buf[7] == 0x00))
}

func isSevenZipSig(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C})
}

// sniffTable is ordered; the first matching signature wins, so the
// order is part of the detection contract.
var sniffTable = []struct {
	format CompressionFormat
	match  func([]byte) bool
}{
	{Zip, isZipSig},
	{Tar, isTarSig},
	{Gzip, isGzipSig},
	{Bzip, isBzip2Sig},
	{Bzip3, isBzip3Sig},
	{Lzma, isLzmaSig},
	{Xz, isXzSig},
	{Lzip, isLzipSig},
	{Lz4, isLz4Sig},
	{Snappy, isSnappySig},
	{Zstd, isZstdSig},
	{Rar, isRarSig},
	{SevenZip, isSevenZipSig},
}

// SniffFormat guesses a single format from the leading bytes of the
// file at path. Detection is best effort: an unopenable or unreadable
// file, a short read, or an unrecognized prefix all yield ok == false,
// never an error, and callers fall back to other detection means.
func SniffFormat(path string) (Extension, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Extension{}, false
	}
	defer f.Close()

	// A short file just yields a shorter buffer.
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Extension{}, false
	}
	return MatchSignature(buf[:n])
}

// MatchSignature matches a byte prefix against the signature table.
func MatchSignature(buf []byte) (Extension, bool) {
	for _, entry := range sniffTable {
		if entry.match(buf) {
			return NewExtension([]CompressionFormat{entry.format}, entry.format.String()), true
		}
	}
	return Extension{}, false
}
