package passage

// Theme defines semantic color mappings for rendered stdout output using ANSI
// color indices (0-15). Negative values disable the color.
type Theme struct {
	Accent int // Headings
	Muted  int // Code gutters, link targets, rules
	Code   int // Inline code
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent: 5,
		Muted:  8,
		Code:   3,
	}
}
