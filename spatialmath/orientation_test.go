package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis in all the representations
var (
	th    = math.Pi / 4.
	q45x  = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)} // in quaternion representation
	aa45x = &R4AA{th, 1., 0., 0.}                                         // in axis-angle representation
	rm45x = &RotationMatrix{[9]float64{
		1, 0, 0,
		0, math.Cos(th), -math.Sin(th),
		0, math.Sin(th), math.Cos(th),
	}} // in rotation matrix representation
)

func matrixAlmostEqual(t *testing.T, actual, expected *RotationMatrix) {
	t.Helper()
	for i := range expected.mat {
		test.That(t, actual.mat[i], test.ShouldAlmostEqual, expected.mat[i])
	}
}

func TestZeroOrientation(t *testing.T) {
	zero := NewZeroOrientation()
	test.That(t, zero.AxisAngles(), test.ShouldResemble, NewR4AA())
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, zero.RotationMatrix(), test.ShouldResemble, NewIdentityRotationMatrix())
}

func TestQuaternions(t *testing.T) {
	qq45x := NewQuaternion(q45x)
	test.That(t, qq45x.AxisAngles().Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, qq45x.AxisAngles().RX, test.ShouldAlmostEqual, aa45x.RX)
	test.That(t, qq45x.AxisAngles().RY, test.ShouldAlmostEqual, aa45x.RY)
	test.That(t, qq45x.AxisAngles().RZ, test.ShouldAlmostEqual, aa45x.RZ)
	matrixAlmostEqual(t, qq45x.RotationMatrix(), rm45x)
}

func TestAxisAngles(t *testing.T) {
	aa := *aa45x
	q := aa.Quaternion()
	test.That(t, q.Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, q.Imag, test.ShouldAlmostEqual, q45x.Imag)
	test.That(t, q.Jmag, test.ShouldAlmostEqual, q45x.Jmag)
	test.That(t, q.Kmag, test.ShouldAlmostEqual, q45x.Kmag)
	matrixAlmostEqual(t, aa.RotationMatrix(), rm45x)

	t.Run("unnormalized axis", func(t *testing.T) {
		long := &R4AA{Theta: th, RX: 5}
		test.That(t, QuaternionAlmostEqual(long.ToQuat(), q45x, 1e-9), test.ShouldBeTrue)
		test.That(t, long.RX, test.ShouldAlmostEqual, 1)
	})

	t.Run("zero axis", func(t *testing.T) {
		zero := &R4AA{Theta: 1.2}
		test.That(t, zero.Normalize(), test.ShouldBeError, ErrZeroAxis)
		test.That(t, zero.ToQuat(), test.ShouldResemble, quat.Number{Real: 1})
	})

	t.Run("r3", func(t *testing.T) {
		r3v := aa45x.ToR3()
		test.That(t, r3v.X, test.ShouldAlmostEqual, th)
		back := R3ToR4(r3v)
		test.That(t, back.Theta, test.ShouldAlmostEqual, th)
		test.That(t, back.RX, test.ShouldAlmostEqual, 1)
		test.That(t, back.RY, test.ShouldEqual, 0.)
		test.That(t, R3ToR4(r3v.Mul(0)), test.ShouldResemble, NewR4AA())
	})
}

func TestRotationMatrix(t *testing.T) {
	q := rm45x.Quaternion()
	test.That(t, QuaternionAlmostEqual(q, q45x, 1e-9), test.ShouldBeTrue)
	test.That(t, rm45x.AxisAngles().Theta, test.ShouldAlmostEqual, th)
	test.That(t, rm45x.Rank(1e-4), test.ShouldEqual, 3)

	t.Run("column major", func(t *testing.T) {
		colMajor := []float64{0, 1, 0, -1, 0, 0, 0, 0, 1}
		rm, err := NewRotationMatrixFromColumnMajor(colMajor)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, rm.At(0, 1), test.ShouldEqual, -1.)
		test.That(t, rm.At(1, 0), test.ShouldEqual, 1.)
		test.That(t, rm.Col(1).X, test.ShouldEqual, -1.)
		test.That(t, rm.Row(1).X, test.ShouldEqual, 1.)
		test.That(t, rm.ColumnMajor(), test.ShouldResemble, colMajor)

		q := rm.Quaternion()
		expected := quat.Number{Real: math.Sqrt2 / 2, Kmag: math.Sqrt2 / 2}
		test.That(t, QuaternionAlmostEqual(q, expected, 1e-9), test.ShouldBeTrue)
	})

	t.Run("bad length", func(t *testing.T) {
		_, err := NewRotationMatrix([]float64{1, 2, 3})
		test.That(t, err, test.ShouldBeError, "rotation matrix must have 9 elements, got 3")
		_, err = NewRotationMatrixFromColumnMajor(nil)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("rank", func(t *testing.T) {
		zero := &RotationMatrix{}
		test.That(t, zero.Rank(1e-4), test.ShouldEqual, 0)
		rankTwo, err := NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 0})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, rankTwo.Rank(1e-4), test.ShouldEqual, 2)
		tiny, err := NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1e-5})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, tiny.Rank(1e-4), test.ShouldEqual, 2)
	})
}

func TestNearestRotation(t *testing.T) {
	t.Run("already a rotation", func(t *testing.T) {
		nearest, ok := rm45x.NearestRotation()
		test.That(t, ok, test.ShouldBeTrue)
		matrixAlmostEqual(t, nearest, rm45x)
	})

	t.Run("scaled rotation", func(t *testing.T) {
		scaled := &RotationMatrix{}
		for i, v := range rm45x.mat {
			scaled.mat[i] = 3 * v
		}
		nearest, ok := scaled.NearestRotation()
		test.That(t, ok, test.ShouldBeTrue)
		matrixAlmostEqual(t, nearest, rm45x)
	})

	t.Run("noisy rotation", func(t *testing.T) {
		noisy := *rm45x
		noisy.mat[1] += 0.01
		noisy.mat[5] -= 0.01
		nearest, ok := noisy.NearestRotation()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, QuaternionAlmostEqual(nearest.Quaternion(), q45x, 0.01), test.ShouldBeTrue)
		for col := 0; col < 3; col++ {
			test.That(t, nearest.Col(col).Norm(), test.ShouldAlmostEqual, 1)
		}
	})

	t.Run("reflection", func(t *testing.T) {
		mirror, err := NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, -1})
		test.That(t, err, test.ShouldBeNil)
		nearest, ok := mirror.NearestRotation()
		test.That(t, ok, test.ShouldBeTrue)
		c0, c1, c2 := nearest.Col(0), nearest.Col(1), nearest.Col(2)
		test.That(t, c0.Cross(c1).Dot(c2), test.ShouldAlmostEqual, 1)
	})
}

func TestQuaternionHelpers(t *testing.T) {
	unit, err := Normalize(quat.Number{Real: 2})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, unit, test.ShouldResemble, quat.Number{Real: 1})

	_, err = Normalize(quat.Number{})
	test.That(t, err, test.ShouldBeError, ErrZeroQuaternion)

	test.That(t, QuaternionAlmostEqual(q45x, quat.Scale(-1, q45x), 1e-9), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q45x, quat.Number{Real: 1}, 1e-3), test.ShouldBeFalse)
	test.That(t, OrientationAlmostEqual(aa45x, rm45x), test.ShouldBeTrue)

	_, ok := QuatToR4AA(quat.Number{Real: 1})
	test.That(t, ok, test.ShouldBeFalse)

	// a negative real part flips the axis so theta stays in [0, pi]
	flipped, ok := QuatToR4AA(quat.Scale(-1, q45x))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, flipped.Theta, test.ShouldAlmostEqual, th)
	test.That(t, flipped.RX, test.ShouldAlmostEqual, 1)
}
