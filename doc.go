// Package algophase precomputes momentum phases exp(i p·x) on one rank's
// share of a periodic 4D lattice.
//
// The lattice is split over ranks by a Cartesian process grid and stored in
// even/odd (checkerboard) order: site (x, y, z, t) lives in parity plane
// (x+y+z+t) mod 2 of a (2, Lt, Lz, Ly, Lx/2) array. A Phase builds the
// per-direction angle fields 2π·n/(L·G) once and turns them into phase
// fields for integer 3-momenta on demand:
//
//	geom, _ := algophase.NewGeometry(
//	    algophase.Dims{8, 8, 8, 16},  // local X, Y, Z, T
//	    algophase.Dims{1, 1, 2, 2},   // process grid
//	    algophase.Dims{0, 0, 1, 0},   // this rank
//	)
//	phase, _ := algophase.NewPhase(geom, algophase.WithBackend(engine.NewParallelBackend(0)))
//	moms, _ := algophase.EnumerateMomenta(2, 0)
//	stack, _ := phase.Cache(moms)
//	corr, _ := phase.Project(field, stack)
//
// The time direction carries no momentum.
package algophase
