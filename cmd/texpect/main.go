// Command texpect compares program output against a golden file with
// embedded regexp fragments. See the texpect package documentation for the
// golden file format.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"texpect"
)

var (
	selftest bool
	verbose  bool
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texpect <golden-file> <out-file>",
		Short: "Compare program output against a golden file with regexp fragments",
		Long: `texpect compares an out file against a golden file whose lines may embed
regexp fragments between '<' and '>'. Text outside fragments must match
exactly, fragments match their regexp. The first golden line that fails to
match is reported with its 0-based line number; out file content beyond the
golden text is reported as trailing.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if selftest {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVar(&selftest, "selftest", false,
		"run the built-in self test instead of comparing files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"trace every matched golden line to stderr")
	return cmd
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("texpect: ")
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "texpect: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
	if selftest {
		if err := texpect.SelfTest(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("texpect self test passed")
		return nil
	}
	cmpr := texpect.Compare{}
	if verbose {
		cmpr.OnMatch = func(p *texpect.Pattern, consumed string) {
			fmt.Fprintf(os.Stderr, "golden line %d matched %d bytes\n",
				p.Line(), len(consumed))
		}
	}
	err := cmpr.Files(args[0], args[1])
	var mismatch *texpect.MismatchError
	var trailing *texpect.TrailingError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &mismatch), errors.As(err, &trailing):
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	default:
		// golden compile errors and file access errors are fatal
		log.Fatal(err)
	}
	return nil
}
