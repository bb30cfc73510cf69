package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"squish"
)

var decompressCmd = &cobra.Command{
	Use:     "decompress <files...>",
	Aliases: []string{"d"},
	Short:   "Decompress files and extract archives",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := runDecompress(path); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	decompressCmd.Flags().StringVarP(&flagDir, "dir", "d", "", "directory to decompress into")
}

func runDecompress(path string) error {
	var chain []squish.Extension
	var stem string
	var err error
	if flagFormat != "" {
		chain, err = squish.ParseFormatFlag(flagFormat)
		stem = trimChainSuffix(path, chain)
	} else {
		stem, chain, err = squish.ParseFilename(path)
	}
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		ext, ok := squish.SniffFormat(path)
		if !ok {
			e := &squish.UsageError{Title: fmt.Sprintf("cannot decompress '%s'", path)}
			e.Detail("the file has no supported extension and its content did not match a known format")
			e.Hint("use --format to state the format explicitly, e.g. --format tar.gz")
			return e
		}
		squish.Warningf("could not infer the format of '%s' from its name, detected %s from its content", path, ext)
		chain = []squish.Extension{ext}
	}

	first, rest := squish.SplitFirst(chain)
	if flagDir != "" {
		stem = filepath.Join(flagDir, filepath.Base(stem))
	}

	if !first.IsArchive() {
		return decompressStream(path, stem, append([]squish.CompressionFormat{first}, rest...))
	}
	return extractArchive(path, stem, first, rest)
}

// decompressStream decodes a stack of single-stream codecs into the
// stem file.
func decompressStream(path, stem string, formats []squish.CompressionFormat) error {
	outPath, ok, err := squish.ResolvePathConflict(stem, decideConflict, questionPolicy(), squish.ActionDecompress)
	if err != nil {
		return err
	}
	if !ok {
		squish.Infof("operation cancelled")
		return nil
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	r, closers, err := decoderStack(in, formats)
	if err != nil {
		return err
	}
	defer closeAll(closers)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	squish.Infof("successfully decompressed '%s' into '%s'", path, outPath)
	return nil
}

// extractArchive unpacks the archive layer, decoding any compressor
// layers above it first.
func extractArchive(path, stem string, archive squish.CompressionFormat, rest []squish.CompressionFormat) error {
	dst, ok, err := squish.ResolvePathConflict(stem, decideConflict, questionPolicy(), squish.ActionDecompress)
	if err != nil {
		return err
	}
	if !ok {
		squish.Infof("operation cancelled")
		return nil
	}
	if err := squish.CreateDirIfMissing(dst); err != nil {
		return err
	}

	var created []string
	switch archive {
	case squish.Tar:
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		r, closers, err := decoderStack(in, rest)
		if err != nil {
			return err
		}
		defer closeAll(closers)
		created, err = squish.UnpackTar(r, dst)
		if err != nil {
			return err
		}
	case squish.Zip, squish.Rar, squish.SevenZip:
		// These formats need random access, so compressor layers above
		// them are materialized into a temporary file first.
		archivePath := path
		if len(rest) > 0 {
			archivePath, err = decodeToTemp(path, rest)
			if err != nil {
				return err
			}
			defer os.Remove(archivePath)
		}
		switch archive {
		case squish.Zip:
			created, err = squish.UnpackZip(archivePath, dst)
		case squish.Rar:
			created, err = squish.UnpackRar(archivePath, dst)
		default:
			created, err = squish.UnpackSevenZip(archivePath, dst)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: extracting %s is not supported", squish.ErrUnsupportedFormat, archive)
	}

	squish.Infof("successfully extracted %d files from '%s' into '%s'", len(created), path, dst)
	return nil
}

// decoderStack wraps r with decompressors for formats, outermost byte
// layer (the last format) first.
func decoderStack(r io.Reader, formats []squish.CompressionFormat) (io.Reader, []io.Closer, error) {
	var closers []io.Closer
	for i := len(formats) - 1; i >= 0; i-- {
		rc, err := squish.NewDecompressor(formats[i], r)
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		closers = append(closers, rc)
		r = rc
	}
	return r, closers, nil
}

// decodeToTemp decodes the compressor layers of path into a temporary
// file and returns its name. The caller removes it.
func decodeToTemp(path string, formats []squish.CompressionFormat) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	r, closers, err := decoderStack(in, formats)
	if err != nil {
		return "", err
	}
	defer closeAll(closers)

	tmp, err := os.CreateTemp("", "squish-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}
}

// trimChainSuffix strips the chain's extension tokens off path when
// the user forced a format that matches the actual file name.
func trimChainSuffix(path string, chain []squish.Extension) string {
	for i := len(chain) - 1; i >= 0; i-- {
		trimmed := strings.TrimSuffix(path, "."+chain[i].String())
		if trimmed == path {
			break
		}
		path = trimmed
	}
	return path
}
