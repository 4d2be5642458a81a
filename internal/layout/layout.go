package layout

import "strings"

// Measurer reports the pixel width of a string at one fixed font size. It
// must be deterministic and side-effect free; the optimizer relies on that.
type Measurer interface {
	Width(text string) float64
}

// Provider yields a Measurer configured at the given font size.
type Provider func(size float64) (Measurer, error)

// Spec is the layout chosen for a render job: computed once, immutable
// afterwards, shared by every frame.
type Spec struct {
	FontSize   float64
	Lines      []string
	LineHeight float64
}

// Wrap splits text into lines no wider than maxWidth using greedy word
// wrapping. Words are never broken: a single word wider than maxWidth gets a
// line of its own. Empty text yields one empty line. Joining the result with
// single spaces reconstructs the original word sequence.
func Wrap(text string, maxWidth float64, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Width(candidate) < maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

const lineHeightFactor = 1.2

// Optimize finds the largest font size in [minSize, maxSize] whose wrapped
// layout fits maxWidth x maxHeight, stepping down one size at a time. If no
// size fits, the minimum size is used and the layout may overflow maxHeight;
// callers accept overflow rather than failing.
func Optimize(text string, maxWidth, maxHeight, minSize, maxSize float64, faces Provider) (*Spec, error) {
	for size := maxSize; size >= minSize; size-- {
		m, err := faces(size)
		if err != nil {
			return nil, err
		}
		lines := Wrap(text, maxWidth, m)
		lineHeight := size * lineHeightFactor
		if float64(len(lines))*lineHeight <= maxHeight {
			return &Spec{FontSize: size, Lines: lines, LineHeight: lineHeight}, nil
		}
	}

	m, err := faces(minSize)
	if err != nil {
		return nil, err
	}
	return &Spec{
		FontSize:   minSize,
		Lines:      Wrap(text, maxWidth, m),
		LineHeight: minSize * lineHeightFactor,
	}, nil
}
