// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Command tfbindiff compares the compiled functions of two object files
// (ELF, Mach-O or PE) and prints the ones that changed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	tferrors "github.com/tfbindiff/tfbindiff/errors"
	"github.com/tfbindiff/tfbindiff/logger"
	"github.com/tfbindiff/tfbindiff/orchestrator"
	"github.com/tfbindiff/tfbindiff/program"
	"github.com/tfbindiff/tfbindiff/symbols"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, tferrors.UsageMessage+"\n", args[0])
	}

	// flag.ErrHelp and any parse failure both end in the same usage exit
	// code; distinguishing them only matters for whether Parse already
	// printed a message, which it does in both cases.
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	if err := diff(fs.Arg(0), fs.Arg(1), stdout, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		logger.Write(stderr)

		// a bad input path is a usage mistake as much as a wrong argument
		// count is; everything else is an internal failure.
		if tferrors.Category(err) == tferrors.InputFileError {
			return 2
		}
		return 1
	}

	return 0
}

func diff(primaryPath, secondaryPath string, stdout, stderr io.Writer) error {
	primaryData, err := os.ReadFile(primaryPath)
	if err != nil {
		return tferrors.Errorf(tferrors.InputFileMessage, err)
	}
	secondaryData, err := os.ReadFile(secondaryPath)
	if err != nil {
		return tferrors.Errorf(tferrors.InputFileMessage, err)
	}

	changes, err := orchestrator.Run(context.Background(), primaryData, secondaryData)
	if err != nil {
		return err
	}

	primaryProgram, err := program.Load(primaryData)
	if err != nil {
		return err
	}
	secondaryProgram, err := program.Load(secondaryData)
	if err != nil {
		return err
	}

	primaryResolver := symbols.NewResolver(primaryProgram)
	secondaryResolver := symbols.NewResolver(secondaryProgram)

	render(stdout, changes, isTerminal(stdout), primaryResolver, secondaryResolver)
	return nil
}

// isTerminal reports whether w is a terminal, so colour escapes are only
// emitted when something will actually render them.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
