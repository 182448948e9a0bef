package algophase

import (
	"fmt"
	"strconv"
	"strings"

	imath "github.com/cwbudde/algo-phase/internal/math"
)

// Momentum is an integer lattice 3-momentum (px, py, pz) in units of
// 2π/L along each spatial direction.
type Momentum [3]int

// Norm2 returns px²+py²+pz².
func (p Momentum) Norm2() int {
	return p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
}

// String returns the components joined by single spaces, e.g. "1 0 -1".
func (p Momentum) String() string {
	return strconv.Itoa(p[0]) + " " + strconv.Itoa(p[1]) + " " + strconv.Itoa(p[2])
}

// ParseMomentum parses three integers separated by spaces or commas.
func ParseMomentum(s string) (Momentum, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 3 {
		return Momentum{}, fmt.Errorf("%w: momentum %q needs 3 components", ErrDomain, s)
	}

	var p Momentum
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Momentum{}, fmt.Errorf("%w: momentum %q: %w", ErrDomain, s, err)
		}
		p[i] = v
	}

	return p, nil
}

// ISqrt returns floor(sqrt(n)) computed exactly on integers.
// It returns ErrDomain for negative n.
func ISqrt(n int) (int, error) {
	r, ok := imath.ISqrt(n)
	if !ok {
		return 0, fmt.Errorf("%w: integer square root of %d", ErrDomain, n)
	}
	return r, nil
}

// EnumerateMomenta returns every momentum with mom2Min <= |p|² <= mom2Max.
//
// Candidates are visited with pz outermost, then py, then px, each ascending
// from -r to r where r = ISqrt(mom2Max). The result keeps that order, and
// callers index it positionally.
func EnumerateMomenta(mom2Max, mom2Min int) ([]Momentum, error) {
	if mom2Min < 0 {
		return nil, fmt.Errorf("%w: negative mom2 lower bound %d", ErrDomain, mom2Min)
	}

	radius, err := ISqrt(mom2Max)
	if err != nil {
		return nil, err
	}

	moms := []Momentum{}
	for pz := -radius; pz <= radius; pz++ {
		for py := -radius; py <= radius; py++ {
			for px := -radius; px <= radius; px++ {
				p := Momentum{px, py, pz}
				if n2 := p.Norm2(); n2 >= mom2Min && n2 <= mom2Max {
					moms = append(moms, p)
				}
			}
		}
	}

	return moms, nil
}

// EnumerateMomentaIndexed maps each position of EnumerateMomenta's result to
// its label, e.g. {0: "0 0 -1", 1: "0 -1 0", ...}.
func EnumerateMomentaIndexed(mom2Max, mom2Min int) (map[int]string, error) {
	moms, err := EnumerateMomenta(mom2Max, mom2Min)
	if err != nil {
		return nil, err
	}

	labels := make(map[int]string, len(moms))
	for i, p := range moms {
		labels[i] = p.String()
	}

	return labels, nil
}
