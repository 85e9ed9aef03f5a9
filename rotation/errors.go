package rotation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotANumber is wrapped by a FieldError whose text does not parse as a float.
	ErrNotANumber = errors.New("not a number")
	// ErrNotFinite is wrapped by a FieldError whose text parses to NaN or an infinity.
	ErrNotFinite = errors.New("not a finite number")
	// ErrNotUnitQuaternion is returned under the strict quaternion policy for input that is
	// not unit length.
	ErrNotUnitQuaternion = errors.New("quaternion is not unit length")
)

// FieldError reports a field of the authoritative representation that could not be read.
type FieldError struct {
	Representation Representation
	Label          string
	Text           string
	Err            error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s field %s %q: %v", e.Representation, e.Label, e.Text, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// parseFloat reads a finite float64, ignoring surrounding whitespace.
func parseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrNotFinite
		}
		return 0, ErrNotANumber
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}
