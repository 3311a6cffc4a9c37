package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/deccalc"
)

// Set via -ldflags at build time.
var version = "dev"

// errReported is returned from the command once failures have already been
// written to stderr.
var errReported = errors.New("evaluation failed")

var errColor = color.New(color.FgRed)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		if err != errReported {
			log.Print(errColor.Sprint(err))
		}
		os.Exit(1)
	}
}

type options struct {
	inname string
	prec   int32
	echo   bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "deccalc [flags] [expression...]",
		Short: "Evaluate arithmetic expressions exactly",
		Long: `deccalc evaluates arithmetic expressions with exact decimal arithmetic.

Arguments are joined with spaces into one expression. With no arguments, or
with --in, each non-blank input line is a separate expression. Put -- before
an expression that starts with a minus sign.`,
		Example: `  deccalc 2 + 3 '*' 4
  deccalc -- -5 + 3
  echo '0.1 + 0.2' | deccalc`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	cmd.Flags().StringVar(&o.inname, "in", "", "input file of expressions, one per line (default stdin if no args given)")
	cmd.Flags().Int32Var(&o.prec, "prec", 0, "fractional digits kept by division (default 16, env DECCALC_PREC)")
	cmd.Flags().BoolVar(&o.echo, "echo", false, "print the postfix form of each expression")
	return cmd
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	prec, err := o.precision(cmd)
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := false

	f, closer, err := o.infile(cmd, len(args) == 0)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	if f != nil {
		scan := bufio.NewScanner(f)
		for n := 1; scan.Scan(); n++ {
			line := strings.TrimSpace(scan.Text())
			if line == "" {
				continue
			}
			if err := o.eval(stdout, line, prec); err != nil {
				report(stderr, errors.Wrapf(err, "line %d", n))
				failed = true
			}
		}
		if err := scan.Err(); err != nil {
			return errors.Wrap(err, "reading input")
		}
	}

	if len(args) > 0 {
		if err := o.eval(stdout, strings.Join(args, " "), prec); err != nil {
			report(stderr, err)
			failed = true
		}
	}

	if failed {
		return errReported
	}
	return nil
}

// precision gets the division precision from the flag, then the environment.
func (o *options) precision(cmd *cobra.Command) (int32, error) {
	if cmd.Flags().Changed("prec") {
		if o.prec < 0 {
			return 0, fmt.Errorf("precision (%d) must not be negative", o.prec)
		}
		return o.prec, nil
	}
	v := os.Getenv("DECCALC_PREC")
	if v == "" {
		return deccalc.DefaultPrec, nil
	}
	p, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "DECCALC_PREC")
	}
	if p < 0 {
		return 0, fmt.Errorf("DECCALC_PREC (%d) must not be negative", p)
	}
	return int32(p), nil
}

// infile opens the line-mode input, if any. The closer is non-nil when the
// input is a file the caller must close.
func (o *options) infile(cmd *cobra.Command, std bool) (io.Reader, io.Closer, error) {
	switch {
	case o.inname != "" && o.inname != "-":
		f, err := os.Open(o.inname)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening input")
		}
		return f, f, nil
	case o.inname == "-", std:
		return cmd.InOrStdin(), nil, nil
	}
	return nil, nil, nil
}

func (o *options) eval(w io.Writer, src string, prec int32) error {
	a, err := deccalc.Parse(src)
	if err != nil {
		return err
	}
	r, err := a.Eval(deccalc.Prec(prec))
	if err != nil {
		return err
	}
	if o.echo {
		fmt.Fprintf(w, "%v : ", a)
	}
	fmt.Fprintln(w, r.String())
	return nil
}

func report(w io.Writer, err error) {
	errColor.Fprintln(w, err)
}
