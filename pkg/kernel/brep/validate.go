package brep

import (
	"errors"
	"fmt"

	"github.com/petersancho/brepkit/pkg/nurbs"
)

// ErrDanglingRef marks a reference to an entity ID that does not exist
// in the owning BRep. Dangling references indicate a bug in a
// constructor, not bad user input, so traversals fail loudly on them.
var ErrDanglingRef = errors.New("dangling reference")

// Validate checks referential integrity and the invariants of attached
// NURBS geometry. Geometric degeneracies (zero-area faces, collinear
// input) are not errors; broken cross-references and malformed NURBS
// arrays are.
func (b *BRep) Validate() error {
	l := newLookup(b)

	for _, e := range b.Edges {
		if _, ok := l.vertices[e.Start]; !ok {
			return fmt.Errorf("edge %s start vertex %s: %w", e.ID, e.Start, ErrDanglingRef)
		}
		if _, ok := l.vertices[e.End]; !ok {
			return fmt.Errorf("edge %s end vertex %s: %w", e.ID, e.End, ErrDanglingRef)
		}
		if c, ok := e.Curve.(NurbsCurve); ok {
			if c.Curve == nil {
				return fmt.Errorf("edge %s: nil nurbs curve: %w", e.ID, nurbs.ErrInvalidCurve)
			}
			if err := c.Curve.Validate(); err != nil {
				return fmt.Errorf("edge %s: %w", e.ID, err)
			}
		}
	}

	for _, lp := range b.Loops {
		for _, ref := range lp.Edges {
			if _, ok := l.edges[ref.Edge]; !ok {
				return fmt.Errorf("loop %s edge %s: %w", lp.ID, ref.Edge, ErrDanglingRef)
			}
		}
	}

	for _, f := range b.Faces {
		for _, loopID := range f.Loops {
			if _, ok := l.loops[loopID]; !ok {
				return fmt.Errorf("face %s loop %s: %w", f.ID, loopID, ErrDanglingRef)
			}
		}
		if s, ok := f.Surface.(NurbsSurface); ok {
			if s.Surface == nil {
				return fmt.Errorf("face %s: nil nurbs surface: %w", f.ID, nurbs.ErrInvalidSurface)
			}
			if err := s.Surface.Validate(); err != nil {
				return fmt.Errorf("face %s: %w", f.ID, err)
			}
		}
	}

	for _, s := range b.Solids {
		for _, faceID := range s.Faces {
			if _, ok := l.faces[faceID]; !ok {
				return fmt.Errorf("solid %s face %s: %w", s.ID, faceID, ErrDanglingRef)
			}
		}
	}
	return nil
}
