package display

import (
	"image/color"
	"testing"

	"github.com/fcurrie/hub75/pkg/hub75"
)

type stubPin struct{}

func (stubPin) SetHigh() error { return nil }
func (stubPin) SetLow() error  { return nil }

func newTestSession(t *testing.T) *hub75.Session {
	t.Helper()
	addr := make([]hub75.OutputPin, 3)
	for i := range addr {
		addr[i] = stubPin{}
	}
	pins, err := hub75.NewPinGroup(stubPin{}, stubPin{}, stubPin{}, stubPin{}, stubPin{}, stubPin{}, addr, stubPin{}, stubPin{}, stubPin{})
	if err != nil {
		t.Fatalf("NewPinGroup: %v", err)
	}
	engine, err := hub75.NewEngine(pins, 4, 4, 4)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return hub75.NewSession(engine)
}

func TestPanelSetPixelWritesThroughSession(t *testing.T) {
	session := newTestSession(t)
	panel := NewPanel(session, 4)

	if err := panel.SetPixel(1, 1, color.RGBA{R: 255, A: 255}); err != nil {
		t.Fatalf("SetPixel: %v", err)
	}
	px, _ := session.Engine().FrontBuffer().GetPixel(1, 1)
	if px != hub75.Red(4) {
		t.Fatalf("FrontBuffer()(1,1) = %+v, want Red", px)
	}
}

func TestPanelClearBlanksFrontBuffer(t *testing.T) {
	session := newTestSession(t)
	panel := NewPanel(session, 4)
	panel.SetPixel(0, 0, color.White)
	if err := panel.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	px, _ := session.Engine().FrontBuffer().GetPixel(0, 0)
	if px != hub75.Black(4) {
		t.Fatalf("after Clear, (0,0) = %+v, want Black", px)
	}
}

func TestPanelShowAndCloseAreNoops(t *testing.T) {
	session := newTestSession(t)
	panel := NewPanel(session, 4)
	if err := panel.Show(); err != nil {
		t.Errorf("Show: %v", err)
	}
	if err := panel.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
