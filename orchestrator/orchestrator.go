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

// Package orchestrator drives one end-to-end comparison run: load both
// programs, match their functions, compare every match, and hand back a
// deterministically ordered list of what changed.
package orchestrator

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tfbindiff/tfbindiff/compare"
	"github.com/tfbindiff/tfbindiff/errors"
	"github.com/tfbindiff/tfbindiff/layout"
	"github.com/tfbindiff/tfbindiff/matcher"
	"github.com/tfbindiff/tfbindiff/program"
	"github.com/tfbindiff/tfbindiff/xinst"
)

// FunctionChange describes one function that differs between the primary
// and secondary programs.
type FunctionChange struct {
	Name             string
	PrimaryAddress   uint64
	SecondaryAddress uint64
	Instructions1    []xinst.Instruction
	Instructions2    []xinst.Instruction
	Rows             []layout.Row
}

// Run loads primary and secondary as object files and returns every
// function that changed, ordered by primary address ascending.
func Run(ctx context.Context, primary, secondary []byte) ([]FunctionChange, error) {
	var primaryProgram, secondaryProgram *program.Program

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := program.Load(primary)
		if err != nil {
			return errors.Errorf(errors.LoadError, err)
		}
		primaryProgram = p
		return nil
	})
	g.Go(func() error {
		p, err := program.Load(secondary)
		if err != nil {
			return errors.Errorf(errors.LoadError, err)
		}
		secondaryProgram = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return runOnPrograms(ctx, primaryProgram, secondaryProgram)
}

// runOnPrograms is Run's logic past loading, split out so it can be
// exercised directly against hand-built Programs in tests.
func runOnPrograms(ctx context.Context, primaryProgram, secondaryProgram *program.Program) ([]FunctionChange, error) {
	if primaryProgram.PointerSize != secondaryProgram.PointerSize {
		return nil, errors.Errorf(errors.PointerSizeDiffers, primaryProgram.PointerSize, secondaryProgram.PointerSize)
	}
	mode := xinst.ModeFromPointerSize(primaryProgram.PointerSize)

	m := matcher.New(secondaryProgram)

	var mu sync.Mutex
	var changes []FunctionChange

	// a comparison failure is kept rather than returned from the worker so
	// that, when several functions fail, the one with the lowest primary
	// address is reported whatever order the workers finished in
	var firstErr error
	var firstErrAddr uint64

	cg, _ := errgroup.WithContext(ctx)
	for name, f1 := range primaryProgram.Functions {
		name, f1 := name, f1
		f2, ok := m.Match(name)
		if !ok {
			continue
		}

		cg.Go(func() error {
			result, err := compare.Compare(f1, f2, mode)
			if err != nil {
				mu.Lock()
				if firstErr == nil || f1.Address < firstErrAddr {
					firstErr = errors.Errorf(errors.CompareError, name, err)
					firstErrAddr = f1.Address
				}
				mu.Unlock()
				return nil
			}
			if result.Same {
				return nil
			}

			change := FunctionChange{
				Name:             name,
				PrimaryAddress:   f1.Address,
				SecondaryAddress: f2.Address,
				Instructions1:    result.Instructions1,
				Instructions2:    result.Instructions2,
				Rows:             layout.Build(result.Instructions1, result.Instructions2, result.Ops),
			}

			mu.Lock()
			changes = append(changes, change)
			mu.Unlock()
			return nil
		})
	}

	if err := cg.Wait(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].PrimaryAddress < changes[j].PrimaryAddress
	})

	return changes, nil
}
