// Package ui draws the colony panels: tool palette, controls, HUD and
// overlay toggles. Text panels are described by field descriptors so the
// layout can change without touching the drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar [0, 1]
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	Label      string
	Widget     WidgetType
	Format     string            // Printf format used with Getter
	Visible    func(any) bool    // nil = always visible
	Getter     func(any) float32 // Numeric value
	TextGetter func(any) string  // Text value, preferred over Getter
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Active         rl.Color
	Inactive       rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Color{R: 232, G: 197, B: 71, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 126, G: 200, B: 80, A: 255},
		Active:         rl.Color{R: 100, G: 200, B: 100, A: 255},
		Inactive:       rl.Color{R: 80, G: 80, B: 80, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
