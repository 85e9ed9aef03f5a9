package rotation

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rotationtool/logging"
	"go.viam.com/rotationtool/spatialmath"
	"go.viam.com/rotationtool/utils"
)

// Precision is the number of decimal places written to every derived field.
const Precision = 4

// QuaternionInputPolicy decides what happens to a typed quaternion that is not unit length.
type QuaternionInputPolicy string

const (
	// NormalizeQuaternion silently scales quaternion input to unit length.
	NormalizeQuaternion QuaternionInputPolicy = "normalize"
	// StrictQuaternion rejects quaternion input further than Options.UnitTolerance from unit length.
	StrictQuaternion QuaternionInputPolicy = "strict"
)

// Options tune the converter.
type Options struct {
	// RankTolerance is the singular value threshold below which a matrix direction counts as
	// degenerate. Matrix input of rank less than 3 is replaced by identity.
	RankTolerance   float64
	QuaternionInput QuaternionInputPolicy
	// UnitTolerance is only used by StrictQuaternion.
	UnitTolerance float64
}

// DefaultOptions returns the options matching the behavior of the desktop tool.
func DefaultOptions() Options {
	return Options{
		RankTolerance:   1e-4,
		QuaternionInput: NormalizeQuaternion,
		UnitTolerance:   1e-3,
	}
}

// Converter derives all representations of a State from the one the user last edited.
type Converter struct {
	logger logging.Logger
	opts   Options
}

// NewConverter returns a Converter.
func NewConverter(logger logging.Logger, opts Options) *Converter {
	return &Converter{logger: logger, opts: opts}
}

// Derive treats the `from` representation of s as authoritative, builds a unit quaternion from it
// and rewrites all three representations, each number with Precision decimals. The returned state
// is not dirty.
//
// s is passed by value and never modified. If a field of the authoritative representation cannot
// be parsed, the returned error wraps one *FieldError per bad field and the caller keeps its state
// as typed. Degenerate geometry (a zero axis, a zero quaternion or a rank deficient matrix) is not
// an error and resolves to the identity rotation.
func (c *Converter) Derive(s State, from Representation) (State, error) {
	var q quat.Number
	var err error
	switch from {
	case Quaternion:
		q, err = c.fromQuaternion(s)
	case AngleAxis:
		q, err = c.fromAngleAxis(s)
	case RotationMatrix:
		q = c.fromRotationMatrix(s)
	default:
		err = errors.Errorf("unknown representation %d", int(from))
	}
	if err != nil {
		return State{}, err
	}

	out := s
	out.fill(q)
	out.Dirty = false
	c.logger.Debugw("derived rotation", "from", from.String(), "w", q.Real, "x", q.Imag, "y", q.Jmag, "z", q.Kmag)
	return out, nil
}

func parseFields(rep Representation, fields []Field) ([]float64, error) {
	vals := make([]float64, len(fields))
	var errs error
	for i, f := range fields {
		v, err := parseFloat(f.Text)
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Representation: rep, Label: f.Label, Text: f.Text, Err: err})
			continue
		}
		vals[i] = v
	}
	return vals, errs
}

func (c *Converter) fromQuaternion(s State) (quat.Number, error) {
	vals, err := parseFields(Quaternion, s.Quaternion[:])
	if err != nil {
		return quat.Number{}, err
	}
	q := quat.Number{Real: vals[0], Imag: vals[1], Jmag: vals[2], Kmag: vals[3]}

	if c.opts.QuaternionInput == StrictQuaternion {
		if norm := quat.Abs(q); !utils.Float64AlmostEqual(norm, 1, c.opts.UnitTolerance) {
			return quat.Number{}, errors.Wrapf(ErrNotUnitQuaternion, "norm is %.6f", norm)
		}
	}
	unit, err := spatialmath.Normalize(q)
	if err != nil {
		c.logger.Warnw("degenerate quaternion, using identity", "error", err)
		return quat.Number{Real: 1}, nil
	}
	return unit, nil
}

func (c *Converter) fromAngleAxis(s State) (quat.Number, error) {
	vals, err := parseFields(AngleAxis, s.AngleAxis[:])
	if err != nil {
		return quat.Number{}, err
	}
	r4 := &spatialmath.R4AA{Theta: vals[0], RX: vals[1], RY: vals[2], RZ: vals[3]}
	if err := r4.Normalize(); err != nil {
		c.logger.Warnw("degenerate axis, using identity", "angle", r4.Theta, "error", err)
		return quat.Number{Real: 1}, nil
	}
	return r4.ToQuat(), nil
}

func (c *Converter) fromRotationMatrix(s State) quat.Number {
	vals := make([]float64, len(s.Matrix))
	for i, text := range s.Matrix {
		v, err := parseFloat(text)
		if err != nil {
			c.logger.Debugw("unreadable matrix entry, using 0", "entry", MatrixLabel(i), "text", text, "error", err)
			continue
		}
		vals[i] = v
	}
	//nolint:errcheck
	rm, _ := spatialmath.NewRotationMatrixFromColumnMajor(vals)
	if rank := rm.Rank(c.opts.RankTolerance); rank < 3 {
		c.logger.Warnw("degenerate matrix, using identity", "rank", rank)
		rm = spatialmath.NewIdentityRotationMatrix()
	}
	nearest, ok := rm.NearestRotation()
	if !ok {
		c.logger.Warn("failed to decompose matrix, using identity")
		return quat.Number{Real: 1}
	}
	return nearest.Quaternion()
}

// fill rewrites every field from the unit quaternion q.
func (s *State) fill(q quat.Number) {
	for i, v := range []float64{q.Real, q.Imag, q.Jmag, q.Kmag} {
		s.Quaternion[i].Text = formatFloat(v)
	}

	r4, ok := spatialmath.QuatToR4AA(q)
	if !ok {
		r4 = spatialmath.NewR4AA()
	}
	for i, v := range []float64{r4.Theta, r4.RX, r4.RY, r4.RZ} {
		s.AngleAxis[i].Text = formatFloat(v)
	}

	for i, v := range spatialmath.QuatToRotationMatrix(q).ColumnMajor() {
		s.Matrix[i] = formatFloat(v)
	}
}

// formatFloat writes v with Precision decimals. Values that round to zero lose their sign.
func formatFloat(v float64) string {
	text := strconv.FormatFloat(v, 'f', Precision, 64)
	if strings.HasPrefix(text, "-") && strings.Trim(text[1:], "0.") == "" {
		return text[1:]
	}
	return text
}
