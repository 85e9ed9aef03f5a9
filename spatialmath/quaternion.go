package spatialmath

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// ErrZeroQuaternion is returned when normalizing a quaternion of zero magnitude.
var ErrZeroQuaternion = errors.New("cannot normalize a zero quaternion")

// identityAxisTolerance is the vector-part magnitude below which a unit quaternion is treated as
// the identity rotation, which has no well defined axis.
const identityAxisTolerance = 1e-9

type quaternion quat.Number

// NewQuaternion wraps a quaternion as an Orientation. The quaternion is expected to be unit length.
func NewQuaternion(q quat.Number) Orientation {
	qq := quaternion(q)
	return &qq
}

// Quaternion returns orientation in quaternion representation.
func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// AxisAngles returns the orientation in axis angle representation. The identity rotation is
// returned as a zero rotation about the default axis.
func (q *quaternion) AxisAngles() *R4AA {
	r4, ok := QuatToR4AA(q.Quaternion())
	if !ok {
		return NewR4AA()
	}
	return r4
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (q *quaternion) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(q.Quaternion())
}

// Normalize scales a quaternion to unit length.
func Normalize(q quat.Number) (quat.Number, error) {
	norm := quat.Abs(q)
	if norm == 0 {
		return quat.Number{}, ErrZeroQuaternion
	}
	if math.IsNaN(norm) || math.IsInf(norm, 0) {
		return quat.Number{}, errors.New("cannot normalize a non-finite quaternion")
	}
	return quat.Scale(1/norm, q), nil
}

// QuaternionAlmostEqual is an equality test for two quaternions up to the given tolerance. Since
// q and -q describe the same rotation, both signs are accepted.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return componentsWithin(a, b, tol) || componentsWithin(a, quat.Scale(-1, b), tol)
}

func componentsWithin(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

// QuatToR4AA converts a unit quaternion to an R4 axis angle with theta in [0, pi]. The axis is
// taken from the hemisphere with a non-negative real part. The returned bool is false for the
// identity rotation, for which no axis can be computed.
func QuatToR4AA(q quat.Number) (*R4AA, bool) {
	vecNorm := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if vecNorm < identityAxisTolerance {
		return nil, false
	}
	sign := 1.
	if q.Real < 0 {
		sign = -1.
	}
	w := math.Min(math.Abs(q.Real), 1)
	return &R4AA{
		Theta: 2 * math.Acos(w),
		RX:    sign * q.Imag / vecNorm,
		RY:    sign * q.Jmag / vecNorm,
		RZ:    sign * q.Kmag / vecNorm,
	}, true
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/quaternionToMatrix/index.htm
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return &RotationMatrix{[9]float64{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}}
}
