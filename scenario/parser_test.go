package scenario_test

import (
	"strings"
	"testing"

	"github.com/tonkatsuu/agriconnect-beta/scenario"
)

const sampleScene = `
scene FieldDemo v1 {
  # camera reports its preview size first
  viewport 400 800
  spacing 30
  visible on

  frame "frame-01.png"

  alert high speech { "Pest detected in ${plot.name}" }
  alert low tone { "Irrigation nominal" }

  wait 50ms
  visible off
  frame "frame-02.png"
}
`

func TestParseScene(t *testing.T) {
	scene, err := scenario.ParseString(sampleScene)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if scene.Name != "FieldDemo" || scene.Version != "v1" {
		t.Fatalf("unexpected scene header: %s %s", scene.Name, scene.Version)
	}
	wantKinds := []string{
		"viewport", "spacing", "visible", "frame",
		"alert", "alert", "wait", "visible", "frame",
	}
	if len(scene.Statements) != len(wantKinds) {
		t.Fatalf("expected %d statements, got %d", len(wantKinds), len(scene.Statements))
	}
	for i, want := range wantKinds {
		if got := scene.Statements[i].Kind(); got != want {
			t.Fatalf("statement %d: expected kind %q, got %q", i, want, got)
		}
	}

	vp := scene.Statements[0].Viewport
	if vp.Width != 400 || vp.Height != 800 {
		t.Fatalf("unexpected viewport: %+v", vp)
	}
	if cm := scene.Statements[1].Spacing.Cm; cm != 30 {
		t.Fatalf("expected spacing 30, got %g", cm)
	}
	if !scene.Statements[2].Visible.On() {
		t.Fatalf("expected visible on")
	}

	a := scene.Statements[4].Alert
	if a.Severity != "high" || a.Mode != "speech" {
		t.Fatalf("unexpected alert header: %s %s", a.Severity, a.Mode)
	}
	if string(a.Message) != "Pest detected in ${plot.name}" {
		t.Fatalf("unexpected alert message: %q", a.Message)
	}

	if d := scene.Statements[6].Wait.Duration; d != "50ms" {
		t.Fatalf("expected wait 50ms, got %q", d)
	}
	if scene.Statements[7].Visible.On() {
		t.Fatalf("expected visible off")
	}
}

func TestParseFromReader(t *testing.T) {
	if _, err := scenario.Parse(strings.NewReader(sampleScene)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
}

func TestParseRejectsMalformedScene(t *testing.T) {
	bad := []string{
		`scene X v1 { alert urgent speech { "msg" } }`, // unknown severity
		`scene X v1 { spacing }`,                       // missing value
		`scene X v1 { frame frame.png }`,               // unquoted name
	}
	for _, input := range bad {
		if _, err := scenario.ParseString(input); err == nil {
			t.Fatalf("expected parse error for %q", input)
		}
	}
}
