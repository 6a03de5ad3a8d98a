package options

import "golang.org/x/sync/errgroup"

// Mapper schedules n independent units of work and reports the first
// failure. Implementations invoke render at most once per index in
// [0, n), in any order or interleaving, and may stop scheduling after a
// failure. Result slots are owned and ordered by the caller, so a mapper
// never touches output ordering.
type Mapper func(n int, render func(i int) error) error

// Sequential runs the units one at a time, in index order, stopping at
// the first failure.
func Sequential(n int, render func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := render(i); err != nil {
			return err
		}
	}
	return nil
}

// Parallel runs one goroutine per unit and waits for all of them to
// finish, returning the first failure.
func Parallel(n int, render func(i int) error) error {
	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return render(i)
		})
	}
	return g.Wait()
}
