package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"squish"
)

var listCmd = &cobra.Command{
	Use:     "list <archives...>",
	Aliases: []string{"l"},
	Short:   "List the contents of archives without extracting them",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := runList(path); err != nil {
				return err
			}
		}
		return nil
	},
}

func runList(path string) error {
	var chain []squish.Extension
	var err error
	if flagFormat != "" {
		chain, err = squish.ParseFormatFlag(flagFormat)
	} else {
		chain, err = squish.ExtensionsFromPath(path)
	}
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		ext, ok := squish.SniffFormat(path)
		if !ok {
			return fmt.Errorf("squish: cannot tell the archive format of '%s'", path)
		}
		chain = []squish.Extension{ext}
	}

	first, rest := squish.SplitFirst(chain)
	if !first.IsArchive() {
		e := &squish.UsageError{Title: fmt.Sprintf("cannot list '%s'", path)}
		e.Detail(fmt.Sprintf("'%s' is not an archive format", first))
		e.Hint("only tar, zip, rar and 7z archives have listable contents")
		return e
	}

	var names []string
	switch first {
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
		names, err = squish.ListTar(r)
		if err != nil {
			return err
		}
	case squish.Zip, squish.Rar, squish.SevenZip:
		archivePath := path
		if len(rest) > 0 {
			archivePath, err = decodeToTemp(path, rest)
			if err != nil {
				return err
			}
			defer os.Remove(archivePath)
		}
		switch first {
		case squish.Zip:
			names, err = squish.ListZip(archivePath)
		case squish.Rar:
			names, err = squish.ListRar(archivePath)
		default:
			names, err = squish.ListSevenZip(archivePath)
		}
		if err != nil {
			return err
		}
	}

	fmt.Printf("%s:\n", path)
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
