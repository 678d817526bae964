package fftcheck

import "github.com/cwbudde/fftcheck/internal/fftypes"

// Complex is a type constraint for the sample types the harness validates.
// The canonical definition is in internal/fftypes.
type Complex = fftypes.Complex

// Float is a type constraint for the real scalars inputs are synthesized from.
// The canonical definition is in internal/fftypes.
type Float = fftypes.Float
