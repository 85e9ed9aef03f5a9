package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from 9 values in row major order. The values are
// not checked for orthonormality.
func NewRotationMatrix(rowMajor []float64) (*RotationMatrix, error) {
	if len(rowMajor) != 9 {
		return nil, errors.Errorf("rotation matrix must have 9 elements, got %d", len(rowMajor))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], rowMajor)
	return rm, nil
}

// NewRotationMatrixFromColumnMajor creates a rotation matrix from 9 values in column major order,
// i.e. element i is at row i%3 and column i/3.
func NewRotationMatrixFromColumnMajor(colMajor []float64) (*RotationMatrix, error) {
	if len(colMajor) != 9 {
		return nil, errors.Errorf("rotation matrix must have 9 elements, got %d", len(colMajor))
	}
	rm := &RotationMatrix{}
	for i, v := range colMajor {
		rm.mat[3*(i%3)+i/3] = v
	}
	return rm, nil
}

// NewIdentityRotationMatrix returns the 3x3 identity.
func NewIdentityRotationMatrix() *RotationMatrix {
	return &RotationMatrix{[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return NewQuaternion(rm.Quaternion()).AxisAngles()
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// Quaternion returns orientation in quaternion representation. The matrix is assumed to be a
// proper rotation; use NearestRotation first for arbitrary input.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/matrixToQuaternion/index.htm
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := rm.mat
	var q quat.Number
	tr := m[0] + m[4] + m[8]
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{Real: 0.25 * s, Imag: (m[7] - m[5]) / s, Jmag: (m[2] - m[6]) / s, Kmag: (m[3] - m[1]) / s}
	case m[0] > m[4] && m[0] > m[8]:
		s := math.Sqrt(1+m[0]-m[4]-m[8]) * 2
		q = quat.Number{Real: (m[7] - m[5]) / s, Imag: 0.25 * s, Jmag: (m[1] + m[3]) / s, Kmag: (m[2] + m[6]) / s}
	case m[4] > m[8]:
		s := math.Sqrt(1+m[4]-m[0]-m[8]) * 2
		q = quat.Number{Real: (m[2] - m[6]) / s, Imag: (m[1] + m[3]) / s, Jmag: 0.25 * s, Kmag: (m[5] + m[7]) / s}
	default:
		s := math.Sqrt(1+m[8]-m[0]-m[4]) * 2
		q = quat.Number{Real: (m[3] - m[1]) / s, Imag: (m[2] + m[6]) / s, Jmag: (m[5] + m[7]) / s, Kmag: 0.25 * s}
	}
	if unit, err := Normalize(q); err == nil {
		return unit
	}
	return quat.Number{Real: 1}
}

// At returns the element at row r and column c.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the row of the matrix at the given index.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[3*row], Y: rm.mat[3*row+1], Z: rm.mat[3*row+2]}
}

// Col returns the column of the matrix at the given index.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[col+3], Z: rm.mat[col+6]}
}

// ColumnMajor returns the 9 elements in column major order.
func (rm *RotationMatrix) ColumnMajor() []float64 {
	out := make([]float64, 0, 9)
	for col := 0; col < 3; col++ {
		c := rm.Col(col)
		out = append(out, c.X, c.Y, c.Z)
	}
	return out
}

func (rm *RotationMatrix) dense() *mat.Dense {
	data := make([]float64, 9)
	copy(data, rm.mat[:])
	return mat.NewDense(3, 3, data)
}

// Rank returns the numeric rank of the matrix: the number of singular values greater than tol.
func (rm *RotationMatrix) Rank(tol float64) int {
	var svd mat.SVD
	if ok := svd.Factorize(rm.dense(), mat.SVDNone); !ok {
		return 0
	}
	rank := 0
	for _, v := range svd.Values(nil) {
		if v > tol {
			rank++
		}
	}
	return rank
}

// NearestRotation returns the proper rotation closest to the matrix in the Frobenius norm,
// computed from the polar decomposition R = U diag(1, 1, det(U V^T)) V^T. False is returned if
// the decomposition fails.
func (rm *RotationMatrix) NearestRotation() (*RotationMatrix, bool) {
	var svd mat.SVD
	if ok := svd.Factorize(rm.dense(), mat.SVDFull); !ok {
		return nil, false
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var uvt mat.Dense
	uvt.Mul(&u, v.T())
	reflect := 1.
	if mat.Det(&uvt) < 0 {
		reflect = -1.
	}

	var ud, r mat.Dense
	ud.Mul(&u, mat.NewDiagDense(3, []float64{1, 1, reflect}))
	r.Mul(&ud, v.T())

	out := &RotationMatrix{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.mat[3*row+col] = r.At(row, col)
		}
	}
	return out, true
}
