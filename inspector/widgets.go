package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 36, G: 40, B: 52, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 200, B: 255, A: 255}
	ColorBarLow      = rl.Color{R: 255, G: 90, B: 110, A: 255}
	ColorText        = rl.Color{R: 225, G: 230, B: 240, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 160, B: 175, A: 255}
	ColorAngleBg     = rl.Color{R: 44, G: 50, B: 66, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 210, B: 90, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 220, B: 120, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 90, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	fmtStr := options["fmt"]
	text := FormatValue(value, fmtStr)
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 16, ColorText)
	return 20
}

// DrawBar renders a horizontal progress bar.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	maxVal := GetMax(options)
	ratio := value / maxVal
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)
	barHeight := int32(14)

	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Bar background
	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	// Bar fill
	fillWidth := int32(float32(barWidth) * ratio)
	fillColor := ColorBarFill
	if ratio < 0.3 {
		fillColor = ColorBarLow
	}
	rl.DrawRectangle(barX, y, fillWidth, barHeight, fillColor)

	// Value text
	valueStr := fmt.Sprintf("%.2f", value)
	rl.DrawText(valueStr, barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawAngle renders a compass-style angle indicator.
func DrawAngle(x, y int32, name string, radians float32, options map[string]string) int32 {
	size := int32(40)
	centerX := x + 60 + size/2
	centerY := y + size/2

	// Label
	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	// Circle background
	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	// Needle
	needleLen := float32(size/2 - 4)
	endX := float32(centerX) + needleLen*float32(math.Cos(float64(radians)))
	endY := float32(centerY) + needleLen*float32(math.Sin(float64(radians)))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	// Degree text
	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+60+size+5, y+size/2-7, 14, ColorTextDim)

	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Indicator
	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// DrawVec renders a vector as a direction needle plus its length.
func DrawVec(x, y int32, name string, v r2.Vec) int32 {
	n := r2.Norm(v)
	if n == 0 {
		return DrawLabel(x, y, name, v, nil)
	}
	angle := float32(math.Atan2(v.Y, v.X))
	h := DrawAngle(x, y, name, angle, nil)
	rl.DrawText(fmt.Sprintf("|%.2f|", n), x+150, y+4, 12, ColorTextDim)
	return h
}

// FieldHeight returns the vertical space DrawField uses for f.
func FieldHeight(f Field) int32 {
	_, numeric := GetFloatValue(f.Value)
	switch f.Widget {
	case WidgetBar:
		if numeric {
			return 18
		}
	case WidgetBool:
		if _, ok := f.Value.(bool); ok {
			return 18
		}
	case WidgetAngle:
		if numeric {
			return 44
		}
	case WidgetVec:
		if v, ok := f.Value.(r2.Vec); ok && r2.Norm(v) > 0 {
			return 44
		}
	}
	return 20
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v, field.Options)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	case WidgetVec:
		if v, ok := field.Value.(r2.Vec); ok {
			return DrawVec(x, y, field.Name, v)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	default:
		return DrawLabel(x, y, field.Name, field.Value, field.Options)
	}
}
