package rotation

import (
	"testing"

	"go.viam.com/test"
)

func TestNewState(t *testing.T) {
	s := NewState()
	test.That(t, s.Dirty, test.ShouldBeFalse)
	test.That(t, s.Sync(), test.ShouldEqual, "Sync")
	test.That(t, texts(s.Quaternion), test.ShouldResemble, []string{"1.0", "0.0", "0.0", "0.0"})
	test.That(t, texts(s.AngleAxis), test.ShouldResemble, []string{"0.0", "1.0", "0.0", "0.0"})
	test.That(t, s.Matrix, test.ShouldResemble, [9]string{"1.0", "0.0", "0.0", "0.0", "1.0", "0.0", "0.0", "0.0", "1.0"})
}

func TestSetAndText(t *testing.T) {
	s := NewState()
	test.That(t, s.Set(AngleAxis, 0, "3.14"), test.ShouldBeNil)
	test.That(t, s.Dirty, test.ShouldBeTrue)
	test.That(t, s.Sync(), test.ShouldEqual, "Unsync")

	text, err := s.Text(AngleAxis, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, text, test.ShouldEqual, "3.14")

	test.That(t, s.Set(RotationMatrix, 8, "-1"), test.ShouldBeNil)
	test.That(t, s.Matrix[8], test.ShouldEqual, "-1")

	// text is kept verbatim, even when it is not a number
	test.That(t, s.Set(Quaternion, 3, "1e"), test.ShouldBeNil)
	test.That(t, s.Quaternion[3].Text, test.ShouldEqual, "1e")
	test.That(t, s.Quaternion[3].Label, test.ShouldEqual, "Qz")

	t.Run("out of range", func(t *testing.T) {
		s := NewState()
		test.That(t, s.Set(Quaternion, 4, "0"), test.ShouldBeError, "quaternion has no field 4")
		test.That(t, s.Set(RotationMatrix, -1, "0"), test.ShouldBeError, "rotation-matrix has no field -1")
		test.That(t, s.Dirty, test.ShouldBeFalse)
		_, err := s.Text(AngleAxis, 9)
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestParseRepresentation(t *testing.T) {
	for name, want := range map[string]Representation{
		"quaternion":      Quaternion,
		"Quat":            Quaternion,
		"q":               Quaternion,
		"angle-axis":      AngleAxis,
		" axis-angle ":    AngleAxis,
		"AA":              AngleAxis,
		"rotation-matrix": RotationMatrix,
		"matrix":          RotationMatrix,
		"m":               RotationMatrix,
	} {
		rep, err := ParseRepresentation(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, rep, test.ShouldEqual, want)
	}

	_, err := ParseRepresentation("euler")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"euler"`)

	for _, rep := range []Representation{Quaternion, AngleAxis, RotationMatrix} {
		parsed, err := ParseRepresentation(rep.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, rep)
	}
	test.That(t, Representation(5).String(), test.ShouldEqual, "Representation(5)")
}

func TestLabels(t *testing.T) {
	test.That(t, Labels(Quaternion), test.ShouldResemble, []string{"Qw", "Qx", "Qy", "Qz"})
	test.That(t, Labels(AngleAxis), test.ShouldResemble, []string{"Ang (rad)", "AxisX", "AxisY", "AxisZ"})
	test.That(t, Labels(RotationMatrix), test.ShouldResemble, []string{
		"R11", "R21", "R31", "R12", "R22", "R32", "R13", "R23", "R33",
	})
	test.That(t, FieldCount(Quaternion), test.ShouldEqual, 4)
	test.That(t, FieldCount(AngleAxis), test.ShouldEqual, 4)
	test.That(t, FieldCount(RotationMatrix), test.ShouldEqual, 9)
}
