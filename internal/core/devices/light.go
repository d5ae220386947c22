package devices

import "fmt"

// Color temperature bounds in Kelvin.
const (
	MinColorTemp = 3000
	MaxColorTemp = 6000
)

// lightColorBands maps color temperatures to display tokens. Ordered from
// warm to daylight; the nearest band to the configured temperature wins.
var lightColorBands = []struct {
	temp  int
	color string
}{
	{3000, "#FF9E80"}, // warm
	{4000, "#FFECB3"}, // neutral
	{5000, "#E3F2FD"}, // cool
	{6000, "#E1F5FE"}, // daylight
}

// Light is a dimmable light with adjustable color temperature.
type Light struct {
	baseDevice
	brightness int
	colorTemp  int
}

// NewLight creates a light in the given room. A zero colorTemp falls back to
// the neutral 4000K; out-of-range values are clamped.
func NewLight(id, room string, colorTemp int) *Light {
	if colorTemp == 0 {
		colorTemp = 4000
	}
	l := &Light{
		baseDevice: newBaseDevice(id, room, TypeLight),
		colorTemp:  clampInt(colorTemp, MinColorTemp, MaxColorTemp),
	}
	l.color = nearestLightColor(l.colorTemp)
	return l
}

// SetBrightness clamps to [0,100] and couples the on flag: zero brightness
// turns the light off, anything above zero turns it on.
func (l *Light) SetBrightness(brightness int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.brightness = clampInt(brightness, 0, 100)
	l.on = l.brightness > 0
}

func (l *Light) Brightness() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.brightness
}

// SetColorTemp clamps to [MinColorTemp, MaxColorTemp] Kelvin and refreshes
// the display color token.
func (l *Light) SetColorTemp(kelvin int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorTemp = clampInt(kelvin, MinColorTemp, MaxColorTemp)
	l.color = nearestLightColor(l.colorTemp)
}

func (l *Light) ColorTemp() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.colorTemp
}

func (l *Light) Describe() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		return l.offSummary()
	}
	return fmt.Sprintf("%s (%s): %d%% - %dK", l.id, l.room, l.brightness, l.colorTemp)
}

func nearestLightColor(kelvin int) string {
	best := lightColorBands[0]
	for _, band := range lightColorBands[1:] {
		if abs(band.temp-kelvin) < abs(best.temp-kelvin) {
			best = band
		}
	}
	return best.color
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
