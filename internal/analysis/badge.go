package analysis

import (
	"fmt"
	"math"
)

// Color is the score badge colour.
type Color string

const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
)

// Badge is the label shown next to a match score.
type Badge struct {
	Score float64
	Color Color
	Label string
}

// BadgeFor maps a score to its badge: above 75 green, above 50 yellow, otherwise red.
func BadgeFor(score float64) Badge {
	switch {
	case score > 75:
		return Badge{Score: score, Color: Green, Label: "Strong match"}
	case score > 50:
		return Badge{Score: score, Color: Yellow, Label: "Moderate match"}
	default:
		return Badge{Score: score, Color: Red, Label: "Weak match"}
	}
}

// Text renders the badge as "82% Strong match".
func (b Badge) Text() string {
	return fmt.Sprintf("%d%% %s", int(math.Round(b.Score)), b.Label)
}

// ANSI returns the terminal colour escape for the badge.
func (b Badge) ANSI() string {
	switch b.Color {
	case Green:
		return "\033[32m"
	case Yellow:
		return "\033[33m"
	default:
		return "\033[31m"
	}
}
