package domain

import "strings"

// Emotion is one label of the fixed mood palette.
type Emotion string

const (
	Happy     Emotion = "Happy"
	Ecstatic  Emotion = "Ecstatic"
	Stressed  Emotion = "Stressed"
	Calm      Emotion = "Calm"
	Exhausted Emotion = "Exhausted"
	Anxious   Emotion = "Anxious"
	Sad       Emotion = "Sad"
	Angry     Emotion = "Angry"
)

// Palette is the closed set of selectable emotions in canonical order.
// Statistics, chart tie-breaking and the radial picker all follow this order.
var Palette = [...]Emotion{Happy, Ecstatic, Stressed, Calm, Exhausted, Anxious, Sad, Angry}

// PaletteSize is the number of emotions in the palette.
const PaletteSize = len(Palette)

var emotionColors = map[Emotion]string{
	Happy:     "#ffdd50",
	Ecstatic:  "#ff9797",
	Stressed:  "#e4b7ff",
	Calm:      "#cfe59a",
	Exhausted: "#aaaaaa",
	Anxious:   "#ffbb5d",
	Sad:       "#5a9ad5",
	Angry:     "#ff6168",
}

// Valid reports whether e belongs to the palette.
func (e Emotion) Valid() bool {
	return e.Index() >= 0
}

// Index returns the palette position of e, or -1 when e is not in the palette.
func (e Emotion) Index() int {
	for i, p := range Palette {
		if p == e {
			return i
		}
	}
	return -1
}

// Color returns the hex fill colour of e.
func (e Emotion) Color() string {
	return emotionColors[e]
}

func (e Emotion) String() string { return string(e) }

// ParseEmotion resolves a label case-insensitively.
func ParseEmotion(s string) (Emotion, error) {
	s = strings.TrimSpace(s)
	for _, e := range Palette {
		if strings.EqualFold(string(e), s) {
			return e, nil
		}
	}
	return "", ErrUnknownEmotion
}
