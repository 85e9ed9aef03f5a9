package rotation

import (
	"github.com/go-viper/mapstructure/v2"
)

// Record is the flat key/value form of a State used for persistence.
type Record struct {
	QW    string `json:"qw"`
	QX    string `json:"qx"`
	QY    string `json:"qy"`
	QZ    string `json:"qz"`
	Angle string `json:"angle"`
	AxisX string `json:"axis_x"`
	AxisY string `json:"axis_y"`
	AxisZ string `json:"axis_z"`
	M0    string `json:"m0"`
	M1    string `json:"m1"`
	M2    string `json:"m2"`
	M3    string `json:"m3"`
	M4    string `json:"m4"`
	M5    string `json:"m5"`
	M6    string `json:"m6"`
	M7    string `json:"m7"`
	M8    string `json:"m8"`
	Dirty bool   `json:"dirty"`
}

// Record flattens the state. Labels are not persisted.
func (s State) Record() Record {
	return Record{
		QW: s.Quaternion[0].Text, QX: s.Quaternion[1].Text, QY: s.Quaternion[2].Text, QZ: s.Quaternion[3].Text,
		Angle: s.AngleAxis[0].Text, AxisX: s.AngleAxis[1].Text, AxisY: s.AngleAxis[2].Text, AxisZ: s.AngleAxis[3].Text,
		M0: s.Matrix[0], M1: s.Matrix[1], M2: s.Matrix[2],
		M3: s.Matrix[3], M4: s.Matrix[4], M5: s.Matrix[5],
		M6: s.Matrix[6], M7: s.Matrix[7], M8: s.Matrix[8],
		Dirty: s.Dirty,
	}
}

// State rebuilds a State with the standard labels.
func (r Record) State() State {
	s := NewState()
	for i, text := range []string{r.QW, r.QX, r.QY, r.QZ} {
		s.Quaternion[i].Text = text
	}
	for i, text := range []string{r.Angle, r.AxisX, r.AxisY, r.AxisZ} {
		s.AngleAxis[i].Text = text
	}
	s.Matrix = [9]string{r.M0, r.M1, r.M2, r.M3, r.M4, r.M5, r.M6, r.M7, r.M8}
	s.Dirty = r.Dirty
	return s
}

// DecodeRecord builds a State from a decoded key/value record. Keys absent from raw keep the
// default identity values. Numbers are accepted in place of strings. The names of keys that are
// not part of a Record are returned.
func DecodeRecord(raw map[string]interface{}) (State, []string, error) {
	rec := NewState().Record()
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &rec,
		Metadata:         &md,
	})
	if err != nil {
		return State{}, nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return State{}, nil, err
	}
	return rec.State(), md.Unused, nil
}
