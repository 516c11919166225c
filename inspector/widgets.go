package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 126, G: 200, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 232, G: 197, B: 71, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawLabel renders "name: value" and returns the height used.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal bar scaled by the max option.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := value / GetMax(options)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	const barWidth, barHeight = 120, 14
	barX := x + 90

	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(barWidth*ratio), barHeight, ColorBarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}

// DrawAngle renders a compass needle for a heading in radians.
func DrawAngle(x, y int32, name string, radians float32) int32 {
	const size = int32(36)
	cx := x + 90 + size/2
	cy := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)
	rl.DrawCircle(cx, cy, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(cx, cy, float32(size/2), ColorTextDim)

	needle := float32(size/2 - 4)
	end := rl.Vector2{
		X: float32(cx) + needle*float32(math.Cos(float64(radians))),
		Y: float32(cy) + needle*float32(math.Sin(float64(radians))),
	}
	rl.DrawLineEx(rl.Vector2{X: float32(cx), Y: float32(cy)}, end, 2, ColorAngleNeedle)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+90+size+6, y+size/2-7, 14, ColorTextDim)
	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	color, text := ColorBoolOff, "no"
	if value {
		color, text = ColorBoolOn, "yes"
	}
	rl.DrawRectangle(x+90, y, 14, 14, color)
	rl.DrawText(text, x+109, y, 14, color)
	return 18
}

// DrawField renders a field using its widget type and returns its height.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}
