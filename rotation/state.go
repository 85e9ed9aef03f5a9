// Package rotation holds the editable text state of a rotation and the converter that keeps its
// quaternion, angle-axis and rotation matrix representations in sync.
package rotation

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Representation names one of the three parameterizations held by a State.
type Representation int

const (
	// Quaternion is a unit quaternion (w, x, y, z).
	Quaternion Representation = iota
	// AngleAxis is an angle in radians about an axis (x, y, z).
	AngleAxis
	// RotationMatrix is a 3x3 matrix stored in column major order.
	RotationMatrix
)

func (rep Representation) String() string {
	switch rep {
	case Quaternion:
		return "quaternion"
	case AngleAxis:
		return "angle-axis"
	case RotationMatrix:
		return "rotation-matrix"
	}
	return fmt.Sprintf("Representation(%d)", int(rep))
}

// ParseRepresentation parses a representation name. Short aliases are accepted.
func ParseRepresentation(name string) (Representation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quaternion", "quat", "q":
		return Quaternion, nil
	case "angle-axis", "angleaxis", "axis-angle", "aa":
		return AngleAxis, nil
	case "rotation-matrix", "matrix", "m":
		return RotationMatrix, nil
	}
	return 0, errors.Errorf("unknown representation %q (expected quaternion, angle-axis or rotation-matrix)", name)
}

// Field is a labeled text field. The text is kept verbatim as the user typed it until the next
// derivation rewrites it.
type Field struct {
	Label string
	Text  string
}

// State is the text of all three representations of one rotation. Before a derivation the
// representations may disagree, since the user may be mid-edit.
type State struct {
	Quaternion [4]Field
	AngleAxis  [4]Field
	// Matrix is column major: index 3*col + row.
	Matrix [9]string
	// Dirty is set by Set and cleared by a successful Converter.Derive.
	Dirty bool
}

var (
	quaternionLabels = [4]string{"Qw", "Qx", "Qy", "Qz"}
	angleAxisLabels  = [4]string{"Ang (rad)", "AxisX", "AxisY", "AxisZ"}
)

// NewState returns the identity rotation in all three representations.
func NewState() State {
	var s State
	for i, text := range []string{"1.0", "0.0", "0.0", "0.0"} {
		s.Quaternion[i] = Field{quaternionLabels[i], text}
	}
	for i, text := range []string{"0.0", "1.0", "0.0", "0.0"} {
		s.AngleAxis[i] = Field{angleAxisLabels[i], text}
	}
	for i := range s.Matrix {
		s.Matrix[i] = "0.0"
		if i%4 == 0 {
			s.Matrix[i] = "1.0"
		}
	}
	return s
}

// FieldCount returns the number of fields of a representation.
func FieldCount(rep Representation) int {
	if rep == RotationMatrix {
		return 9
	}
	return 4
}

// MatrixLabel names the matrix entry stored at a column major index, e.g. "R21" for row 2,
// column 1.
func MatrixLabel(index int) string {
	return fmt.Sprintf("R%d%d", index%3+1, index/3+1)
}

// Labels returns the field labels of a representation in storage order.
func Labels(rep Representation) []string {
	switch rep {
	case Quaternion:
		return quaternionLabels[:]
	case AngleAxis:
		return angleAxisLabels[:]
	default:
	}
	labels := make([]string, 9)
	for i := range labels {
		labels[i] = MatrixLabel(i)
	}
	return labels
}

func (s *State) text(rep Representation, index int) (*string, error) {
	if index < 0 || index >= FieldCount(rep) {
		return nil, errors.Errorf("%s has no field %d", rep, index)
	}
	switch rep {
	case Quaternion:
		return &s.Quaternion[index].Text, nil
	case AngleAxis:
		return &s.AngleAxis[index].Text, nil
	case RotationMatrix:
		return &s.Matrix[index], nil
	}
	return nil, errors.Errorf("unknown representation %d", int(rep))
}

// Text returns the text of one field.
func (s *State) Text(rep Representation, index int) (string, error) {
	text, err := s.text(rep, index)
	if err != nil {
		return "", err
	}
	return *text, nil
}

// Set records an edit of one field and marks the state dirty.
func (s *State) Set(rep Representation, index int, value string) error {
	text, err := s.text(rep, index)
	if err != nil {
		return err
	}
	*text = value
	s.Dirty = true
	return nil
}

// Sync returns "Sync" when the representations agree and "Unsync" while edits are pending.
func (s State) Sync() string {
	if s.Dirty {
		return "Unsync"
	}
	return "Sync"
}
