package main

import (
	"os"

	"github.com/spf13/cobra"

	"squish"
)

var (
	flagFormat string
	flagYes    bool
	flagNo     bool
	flagQuiet  bool
	flagLevel  int
	flagDir    string
)

var rootCmd = &cobra.Command{
	Use:           "squish",
	Short:         "A command-line utility for compressing and decompressing files",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagQuiet {
			squish.SetInfoSink(func(string) {})
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFormat, "format", "f", "", "override the format inferred from the file extension (e.g. tar.gz)")
	pf.BoolVarP(&flagYes, "yes", "y", false, "skip questions, answering overwrite")
	pf.BoolVarP(&flagNo, "no", "n", false, "skip questions, answering cancel")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress info output")

	rootCmd.AddCommand(compressCmd, decompressCmd, listCmd)
}

// questionPolicy folds the --yes/--no flags into a policy value.
func questionPolicy() squish.QuestionPolicy {
	switch {
	case flagYes:
		return squish.PolicyAlwaysYes
	case flagNo:
		return squish.PolicyAlwaysNo
	default:
		return squish.PolicyAsk
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
