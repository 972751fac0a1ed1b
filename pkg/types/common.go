package types

import "errors"

// ValueId identifies one legal value of a dimension (a fabric, a color, a price band...).
// Ids are opaque strings; numeric ids from the backend are rendered without fraction.
type ValueId string

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrNotMultiValued   = errors.New("dimension is not multi-valued")
)

func Amount(v float64) *float64 {
	return &v
}
