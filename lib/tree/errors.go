package tree

import (
	"errors"
	"fmt"
)

// Error taxonomy of the tree package. Every returned error matches exactly
// one of ErrInvalidPosition, ErrStructuralPrecondition, ErrInvalidKey or
// ErrTypeMismatch by errors.Is.
var (
	ErrInvalidPosition        = errors.New("[tree] invalid position")
	ErrStructuralPrecondition = errors.New("[tree] structural precondition violation")
	ErrInvalidKey             = errors.New("[tree] invalid key")
	ErrTypeMismatch           = errors.New("[tree] position type mismatch")
)

var (
	ErrTreeNotEmpty    = fmt.Errorf("%w: tree is not empty", ErrStructuralPrecondition)
	ErrSlotOccupied    = fmt.Errorf("%w: child slot is occupied", ErrStructuralPrecondition)
	ErrNotLeaf         = fmt.Errorf("%w: position is not a leaf", ErrStructuralPrecondition)
	ErrTwoChildren     = fmt.Errorf("%w: position has two children", ErrStructuralPrecondition)
	ErrMissingAncestor = fmt.Errorf("%w: position has no parent or grandparent", ErrStructuralPrecondition)
	ErrSelfAttach      = fmt.Errorf("%w: subtree donor is the host tree or donors are the same tree", ErrStructuralPrecondition)

	ErrIncomparableKey = fmt.Errorf("%w: key has no total order", ErrInvalidKey)
	ErrUnsortedKeys    = fmt.Errorf("%w: keys are not strictly increasing", ErrInvalidKey)
)
