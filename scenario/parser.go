package scenario

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The scenario DSL replays the prototype's interactive controls as a
// script: viewport changes, slider drags, visibility toggles, frame
// snapshots and alert triggers.

var (
	sceneLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Duration", Pattern: `\d+(?:ms|s)`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	sceneParser = participle.MustBuild[Scene](
		participle.Lexer(sceneLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Scene is the root AST node for a scenario file.
type Scene struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"Newline* 'scene' @Ident"`
	Version    string         `parser:"@Ident"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Statement is a single scripted action; exactly one branch is set.
type Statement struct {
	Viewport *ViewportStmt `parser:"  @@"`
	Spacing  *SpacingStmt  `parser:"| @@"`
	Visible  *VisibleStmt  `parser:"| @@"`
	Frame    *FrameStmt    `parser:"| @@"`
	Alert    *AlertStmt    `parser:"| @@"`
	Wait     *WaitStmt     `parser:"| @@"`
}

// Kind returns the human-readable statement type.
func (s *Statement) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Viewport != nil:
		return "viewport"
	case s.Spacing != nil:
		return "spacing"
	case s.Visible != nil:
		return "visible"
	case s.Frame != nil:
		return "frame"
	case s.Alert != nil:
		return "alert"
	case s.Wait != nil:
		return "wait"
	default:
		return "unknown"
	}
}

// ViewportStmt sets the camera viewport size in abstract pixels.
type ViewportStmt struct {
	Width  float64 `parser:"'viewport' @Number"`
	Height float64 `parser:"@Number"`
}

// SpacingStmt sets the grid spacing in centimeters (slider drag).
type SpacingStmt struct {
	Cm float64 `parser:"'spacing' @Number"`
}

// VisibleStmt toggles the overlay (switch flip).
type VisibleStmt struct {
	State string `parser:"'visible' @('on' | 'off')"`
}

// On reports whether the statement turns the overlay on.
func (v *VisibleStmt) On() bool { return v.State == "on" }

// FrameStmt captures the current overlay as an image file.
type FrameStmt struct {
	Name StringLiteral `parser:"'frame' @String"`
}

// AlertStmt triggers one alert dispatch (button press).
type AlertStmt struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Severity string         `parser:"'alert' @('low' | 'medium' | 'high')"`
	Mode     string         `parser:"@('speech' | 'tone')"`
	Message  StringLiteral  `parser:"'{' Newline* @String Newline* '}'"`
}

// WaitStmt pauses scripted playback, letting the redraw ticker run.
type WaitStmt struct {
	Duration string `parser:"'wait' @Duration"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a scenario from an io.Reader.
func Parse(r io.Reader) (*Scene, error) {
	return sceneParser.Parse("", r)
}

// ParseString parses a scenario from a string.
func ParseString(input string) (*Scene, error) {
	return sceneParser.ParseString("", input)
}
