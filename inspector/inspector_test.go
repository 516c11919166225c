package inspector

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/systems"
)

func TestPick(t *testing.T) {
	w := ecs.NewWorld()
	posMap := ecs.NewMap[components.Position](w)
	a := posMap.NewEntity(&components.Position{})
	b := posMap.NewEntity(&components.Position{})

	views := []systems.AntView{
		{Entity: a, X: 10, Y: 10},
		{Entity: b, X: 14, Y: 10},
	}

	tests := []struct {
		name   string
		x, y   float32
		want   ecs.Entity
		wantOK bool
	}{
		{"on first", 10, 10, a, true},
		{"nearer second", 13, 10, b, true},
		{"out of range", 40, 40, ecs.Entity{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(views, tt.x, tt.y, 6)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Pick = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInspectorSelection(t *testing.T) {
	ins := NewInspector(1280)
	if _, ok := ins.Selected(); ok {
		t.Fatal("new inspector has a selection")
	}
	if ins.PanelContains(1200, 50) {
		t.Error("closed panel should not capture clicks")
	}

	w := ecs.NewWorld()
	e := ecs.NewMap[components.Position](w).NewEntity(&components.Position{})
	ins.Select(e)
	if got, ok := ins.Selected(); !ok || got != e {
		t.Errorf("Selected = %v, %v", got, ok)
	}
	if !ins.CloseHit(float32(1280-10-25+5), 15) {
		t.Error("close button not hit")
	}

	ins.Deselect()
	if _, ok := ins.Selected(); ok {
		t.Error("Deselect kept the selection")
	}
}

func TestSenseFields(t *testing.T) {
	f := components.NewForager(40, 3)
	mem := components.NewPositionMemory(4, 12, 34)

	fields := senseFields(&f, &mem, 100)
	if len(fields) != 3 {
		t.Fatalf("got %d fields", len(fields))
	}
	if fields[0].Value != "never" {
		t.Errorf("food seen = %v, want never", fields[0].Value)
	}
	if fields[1].Value != int64(60) {
		t.Errorf("home seen = %v, want 60", fields[1].Value)
	}
	if fields[2].Value != "12, 34" {
		t.Errorf("breadcrumb = %v", fields[2].Value)
	}
}
