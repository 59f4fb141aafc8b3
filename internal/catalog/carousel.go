package catalog

import "github.com/ukydev/showroom/internal/models"

// Breakpoint is a viewport width ceiling and the carousel slides shown up to it.
type Breakpoint struct {
	Key      string
	MaxWidth int
	Slides   int
}

// Breakpoints in ascending width. Widths above the last one show DesktopSlides.
var Breakpoints = []Breakpoint{
	{Key: "mobile", MaxWidth: 768, Slides: 1},
	{Key: "tablet", MaxWidth: 1024, Slides: 2},
}

const (
	DesktopKey    = "desktop"
	DesktopSlides = 3
)

func breakpointFor(width int) Breakpoint {
	// Width 0 means the viewport is unknown (server render); use the smallest layout.
	if width <= 0 {
		return Breakpoints[0]
	}
	for _, bp := range Breakpoints {
		if width <= bp.MaxWidth {
			return bp
		}
	}
	return Breakpoint{Key: DesktopKey, Slides: DesktopSlides}
}

// SlidesToShow returns how many carousel slides fit the viewport width.
func SlidesToShow(width int) int {
	return breakpointFor(width).Slides
}

// BreakpointKey names the layout for width: mobile, tablet or desktop.
func BreakpointKey(width int) string {
	return breakpointFor(width).Key
}

// MediaRules lists the breakpoints widest first for max-width stylesheet
// rules. The last matching rule wins in CSS, so the narrowest layout has to
// come last.
func MediaRules() []Breakpoint {
	rules := make([]Breakpoint, 0, len(Breakpoints))
	for i := len(Breakpoints) - 1; i >= 0; i-- {
		w := Breakpoints[i].MaxWidth
		rules = append(rules, Breakpoint{Key: BreakpointKey(w), MaxWidth: w, Slides: SlidesToShow(w)})
	}
	return rules
}

// MinSlides is the smallest track the home page slider renders.
const MinSlides = 6

// FillSlides repeats vehicles in order until the track holds at least min
// items, then trims to min. Empty input and tracks already long enough are
// returned unchanged.
func FillSlides(vehicles []models.Vehicle, min int) []models.Vehicle {
	if len(vehicles) == 0 || len(vehicles) >= min {
		return vehicles
	}
	out := make([]models.Vehicle, 0, min)
	for len(out) < min {
		out = append(out, vehicles...)
	}
	return out[:min]
}
