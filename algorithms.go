package squish

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	lzip "github.com/sorairolake/lzip-go"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// lz4Levels maps a 1-9 flag value onto the lz4 level constants.
var lz4Levels = []lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// NewCompressor returns a write-closer that compresses into w with the
// given single-stream format. Level 0 selects each codec's default.
// Archive formats and formats with no Go implementation return
// ErrUnsupportedFormat; callers route archives through the archive
// layer instead.
func NewCompressor(format CompressionFormat, w io.Writer, level int) (io.WriteCloser, error) {
	switch format {
	case Gzip:
		if level == 0 {
			level = gzip.DefaultCompression
		}
		return gzip.NewWriterLevel(w, level)
	case Bzip:
		if level == 0 {
			level = bzip2.DefaultCompression
		}
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
	case Lz4:
		zw := lz4.NewWriter(w)
		if level > 0 && level < len(lz4Levels) {
			if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
				return nil, err
			}
		}
		return zw, nil
	case Xz:
		return xz.NewWriter(w)
	case Lzma:
		return lzma.NewWriter(w)
	case Lzip:
		return lzip.NewWriter(w), nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	case Zstd:
		if level == 0 {
			return zstd.NewWriter(w)
		}
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	case Brotli:
		if level == 0 {
			level = brotli.DefaultCompression
		}
		return brotli.NewWriterLevel(w, level), nil
	case Bzip3:
		return nil, fmt.Errorf("%w: no Go implementation of bzip3 is available", ErrUnsupportedFormat)
	case Tar, Zip, Rar, SevenZip:
		return nil, fmt.Errorf("%w: %s is an archive format, not a stream codec", ErrUnsupportedFormat, format)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(format))
	}
}

// NewDecompressor returns a read-closer that decompresses the given
// single-stream format out of r.
func NewDecompressor(format CompressionFormat, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case Gzip:
		return gzip.NewReader(r)
	case Bzip:
		return bzip2.NewReader(r, nil)
	case Lz4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case Lzma:
		lr, err := lzma.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(lr), nil
	case Lzip:
		zr, err := lzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(zr), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case Bzip3:
		return nil, fmt.Errorf("%w: no Go implementation of bzip3 is available", ErrUnsupportedFormat)
	case Tar, Zip, Rar, SevenZip:
		return nil, fmt.Errorf("%w: %s is an archive format, not a stream codec", ErrUnsupportedFormat, format)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(format))
	}
}
