package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = RGB{26, 27, 38}    // Tokyo Night background
	RgbGrass      = RGB{22, 48, 28}    // Off-track ground
	RgbAsphalt    = RGB{70, 72, 84}    // Track surface
	RgbCenterline = RGB{150, 150, 120} // Dashed centerline
	RgbStartLight = RGB{240, 240, 240} // Checkered start, light squares
	RgbStartDark  = RGB{20, 20, 20}    // Checkered start, dark squares
	RgbCar        = RGB{255, 165, 0}   // Orange car
	RgbCarCrashed = RGB{255, 40, 40}   // Car after leaving the track

	RgbHudText  = RGB{220, 220, 220}
	RgbHudLabel = RGB{135, 206, 250} // Light sky blue
	RgbHudHelp  = RGB{120, 120, 130}
	RgbBanner   = RGB{255, 80, 80}
	RgbDemo     = RGB{144, 238, 144} // Light grass green

	// Speed bar gradient endpoints
	RgbSpeedLow  = RGB{0, 200, 0}
	RgbSpeedHigh = RGB{255, 60, 0}
)

func style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(fg.Color()).Background(bg.Color())
}
