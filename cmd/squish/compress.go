package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"squish"
)

var compressCmd = &cobra.Command{
	Use:     "compress <files...> <output>",
	Aliases: []string{"c"},
	Short:   "Compress files and directories",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompress(args[:len(args)-1], args[len(args)-1])
	},
}

func init() {
	compressCmd.Flags().IntVarP(&flagLevel, "level", "l", 0, "compression level, 0 for each codec's default")
}

func runCompress(files []string, output string) error {
	var chain []squish.Extension
	var err error
	if flagFormat != "" {
		chain, err = squish.ParseFormatFlag(flagFormat)
	} else {
		_, chain, err = squish.ParseFilename(output)
	}
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		e := &squish.UsageError{Title: fmt.Sprintf("cannot compress to '%s'", output)}
		e.Detail("the output file must have a supported extension")
		e.Hint("supported extensions: " + squish.PrettySupportedExtensions())
		e.Hint("supported aliases: " + squish.PrettySupportedAliases())
		return e
	}

	first, rest := squish.SplitFirst(chain)

	if !first.IsArchive() && needsArchive(files) {
		e := &squish.UsageError{Title: fmt.Sprintf("cannot compress multiple files or directories to '%s'", output)}
		e.Detail(fmt.Sprintf("'%s' is a single-stream format; an archive layer like tar or zip is required", first))
		if suggested, ok := squish.SuggestArchivePath(output, ".tar"); ok {
			e.Hint(fmt.Sprintf("try compressing to '%s' instead", suggested))
		}
		return e
	}
	if first == squish.Rar || first == squish.SevenZip {
		return fmt.Errorf("%w: compressing to %s is not supported", squish.ErrUnsupportedFormat, first)
	}

	outPath, ok, err := squish.ResolvePathConflict(output, decideConflict, questionPolicy(), squish.ActionCompress)
	if err != nil {
		return err
	}
	if !ok {
		squish.Infof("operation cancelled")
		return nil
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	// The last format in the chain is the outermost byte layer, so the
	// writer stack is built from it inwards.
	streams := rest
	if !first.IsArchive() {
		streams = append([]squish.CompressionFormat{first}, rest...)
	}
	w := io.Writer(out)
	writers := make([]io.WriteCloser, 0, len(streams))
	for i := len(streams) - 1; i >= 0; i-- {
		wc, err := squish.NewCompressor(streams[i], w, flagLevel)
		if err != nil {
			out.Close()
			return err
		}
		writers = append(writers, wc)
		w = wc
	}

	switch first {
	case squish.Tar:
		err = squish.PackTar(files, w)
	case squish.Zip:
		err = squish.PackZip(files, w)
	default:
		var in *os.File
		if in, err = os.Open(files[0]); err == nil {
			_, err = io.Copy(w, in)
			in.Close()
		}
	}
	if err != nil {
		out.Close()
		return err
	}

	// Close from the layer nearest the data outwards so every codec
	// flushes its trailer.
	for i := len(writers) - 1; i >= 0; i-- {
		if err := writers[i].Close(); err != nil {
			out.Close()
			return err
		}
	}
	if err := out.Close(); err != nil {
		return err
	}

	squish.Infof("successfully compressed '%s'", outPath)
	return nil
}

func needsArchive(files []string) bool {
	if len(files) > 1 {
		return true
	}
	info, err := os.Stat(files[0])
	return err == nil && info.IsDir()
}
