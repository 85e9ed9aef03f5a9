// Package editor implements an interactive terminal form for editing a rotation. Every field of
// the three representations is editable; committing a field derives the other two
// representations from the one it belongs to.
package editor

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/rotationtool/logging"
	"go.viam.com/rotationtool/rotation"
)

const (
	labelWidth = 11
	fieldWidth = 12
	helpText   = "Tab/Shift-Tab move  Enter convert  Ctrl-U clear  Esc quit"
)

var (
	headingStyle = tcell.StyleDefault.Bold(true)
	fieldStyle   = tcell.StyleDefault.Underline(true)
	focusStyle   = tcell.StyleDefault.Reverse(true)
	errorStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	helpStyle    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// slot identifies one editable field.
type slot struct {
	rep   rotation.Representation
	index int
}

// focusOrder is the tab order: the quaternion, then angle-axis, then the matrix row by row.
var focusOrder = func() []slot {
	var order []slot
	for i := 0; i < rotation.FieldCount(rotation.Quaternion); i++ {
		order = append(order, slot{rotation.Quaternion, i})
	}
	for i := 0; i < rotation.FieldCount(rotation.AngleAxis); i++ {
		order = append(order, slot{rotation.AngleAxis, i})
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			order = append(order, slot{rotation.RotationMatrix, 3*col + row})
		}
	}
	return order
}()

// Editor is a form over a rotation.State drawn on a tcell screen.
type Editor struct {
	screen tcell.Screen
	conv   *rotation.Converter
	logger logging.Logger

	state  rotation.State
	cursor int
	status string
}

// New returns an Editor showing state. The screen is initialized by Run.
func New(screen tcell.Screen, conv *rotation.Converter, state rotation.State, logger logging.Logger) *Editor {
	return &Editor{
		screen: screen,
		conv:   conv,
		logger: logger,
		state:  state,
	}
}

// State returns the state as currently shown.
func (e *Editor) State() rotation.State {
	return e.state
}

// Focused returns the representation and index of the focused field.
func (e *Editor) Focused() (rotation.Representation, int) {
	f := focusOrder[e.cursor]
	return f.rep, f.index
}

// Status returns the message on the status line. It is empty after a successful conversion.
func (e *Editor) Status() string {
	return e.status
}

// Run initializes the screen and processes events until the user quits or ctx is done. The final
// state is returned in both cases.
func (e *Editor) Run(ctx context.Context) (rotation.State, error) {
	if err := e.screen.Init(); err != nil {
		return e.state, errors.Wrap(err, "failed to start screen")
	}
	defer e.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	utils.PanicCapturingGo(func() {
		select {
		case <-ctx.Done():
			utils.UncheckedError(e.screen.PostEvent(tcell.NewEventInterrupt(nil)))
		case <-done:
		}
	})

	e.Draw()
	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return e.state, nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			e.logger.Debug("editor interrupted")
			return e.state, nil
		}
		if e.HandleEvent(ev) {
			return e.state, nil
		}
		e.Draw()
	}
}

// HandleEvent applies one event to the form. It returns true when the user asked to quit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		return e.handleKey(ev)
	}
	return false
}

func (e *Editor) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab, tcell.KeyDown, tcell.KeyRight:
		e.cursor = (e.cursor + 1) % len(focusOrder)
	case tcell.KeyBacktab, tcell.KeyUp, tcell.KeyLeft:
		e.cursor = (e.cursor + len(focusOrder) - 1) % len(focusOrder)
	case tcell.KeyEnter:
		e.commit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		text := []rune(e.text())
		if len(text) > 0 {
			e.setText(string(text[:len(text)-1]))
		}
	case tcell.KeyCtrlU:
		e.setText("")
	case tcell.KeyRune:
		e.setText(e.text() + string(ev.Rune()))
	default:
	}
	return false
}

func (e *Editor) text() string {
	rep, index := e.Focused()
	//nolint:errcheck
	text, _ := e.state.Text(rep, index)
	return text
}

func (e *Editor) setText(text string) {
	rep, index := e.Focused()
	if err := e.state.Set(rep, index, text); err != nil {
		e.logger.Errorw("failed to edit field", "representation", rep.String(), "index", index, "error", err)
	}
}

// commit derives every representation from the one holding the focused field.
func (e *Editor) commit() {
	rep, _ := e.Focused()
	derived, err := e.conv.Derive(e.state, rep)
	if err != nil {
		e.status = err.Error()
		e.logger.Warnw("conversion failed", "from", rep.String(), "error", err)
		return
	}
	e.state = derived
	e.status = ""
}

// Draw renders the form.
func (e *Editor) Draw() {
	e.screen.Clear()

	drawText(e.screen, 0, 0, headingStyle, fmt.Sprintf("Rotation tool (%s)", e.state.Sync()))

	y := 2
	drawText(e.screen, 0, y, headingStyle, "Quaternion")
	for i, f := range e.state.Quaternion {
		y++
		drawText(e.screen, 2, y, tcell.StyleDefault, f.Label)
		e.drawField(2+labelWidth, y, slot{rotation.Quaternion, i}, f.Text)
	}

	y += 2
	drawText(e.screen, 0, y, headingStyle, "Angle-axis")
	for i, f := range e.state.AngleAxis {
		y++
		drawText(e.screen, 2, y, tcell.StyleDefault, f.Label)
		e.drawField(2+labelWidth, y, slot{rotation.AngleAxis, i}, f.Text)
	}

	y += 2
	drawText(e.screen, 0, y, headingStyle, "Rotation matrix")
	for row := 0; row < 3; row++ {
		y++
		for col := 0; col < 3; col++ {
			index := 3*col + row
			e.drawField(2+col*(fieldWidth+2), y, slot{rotation.RotationMatrix, index}, e.state.Matrix[index])
		}
	}

	y += 2
	drawText(e.screen, 0, y, errorStyle, e.status)
	drawText(e.screen, 0, y+1, helpStyle, helpText)

	e.screen.Show()
}

func (e *Editor) drawField(x, y int, s slot, text string) {
	style := fieldStyle
	if focusOrder[e.cursor] == s {
		style = focusStyle
	}
	runes := []rune(text)
	if len(runes) > fieldWidth {
		runes = runes[len(runes)-fieldWidth:]
	}
	for i := 0; i < fieldWidth; i++ {
		r := ' '
		if i < len(runes) {
			r = runes[i]
		}
		e.screen.SetContent(x+i, y, r, nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
