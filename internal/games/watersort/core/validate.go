package core

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Accept is the generator's solvability oracle. A layout passes when:
//   - colors 0..cfg.Colors-1 each occur exactly cfg.Capacity times and nothing else occurs
//   - it is not already solved
//   - at least one legal move exists
//
// The oracle is shallow: a layout that locks up after a few moves still passes.
func Accept(l Layout, cfg LevelConfig) error {
	counts := l.ColorCounts()
	for _, c := range Palette(cfg.Colors) {
		if counts[c] != cfg.Capacity {
			return ValidationError{
				Code:    "COLOR_COUNT",
				Message: fmt.Sprintf("color %s: %d units, want %d", c, counts[c], cfg.Capacity),
			}
		}
	}
	if len(counts) != cfg.Colors {
		return ValidationError{
			Code:    "COLOR_COUNT",
			Message: fmt.Sprintf("layout has %d colors, want %d", len(counts), cfg.Colors),
		}
	}
	return checkPlayable(l, cfg.Capacity)
}

// ValidateLayout checks a hand-authored layout: tube sizes, palette membership,
// per-color unit counts and playability. An already solved layout is valid;
// an unsolved one needs a legal move.
func ValidateLayout(l Layout, capacity int) error {
	if capacity < 1 {
		return ValidationError{Code: "CAPACITY", Message: fmt.Sprintf("capacity %d must be positive", capacity)}
	}
	if len(l) < 2 {
		return ValidationError{Code: "TUBE_COUNT", Message: fmt.Sprintf("need at least 2 tubes, got %d", len(l))}
	}
	for i, t := range l {
		if len(t) > capacity {
			return ValidationError{
				Code:    "CAPACITY",
				Message: fmt.Sprintf("tube %d holds %d units, capacity is %d", i, len(t), capacity),
			}
		}
		for _, c := range t {
			if !c.Valid() {
				return ValidationError{Code: "UNKNOWN_COLOR", Message: fmt.Sprintf("tube %d has %s", i, c)}
			}
		}
	}
	for c, n := range l.ColorCounts() {
		if n != capacity {
			return ValidationError{
				Code:    "COLOR_COUNT",
				Message: fmt.Sprintf("color %s: %d units, want %d", c, n, capacity),
			}
		}
	}
	if l.IsWon(capacity) {
		return nil
	}
	return checkPlayable(l, capacity)
}

func checkPlayable(l Layout, capacity int) error {
	if l.IsWon(capacity) {
		return ValidationError{Code: "ALREADY_SOLVED", Message: "layout is already solved"}
	}
	if !l.HasLegalMove(capacity) {
		return ValidationError{Code: "NO_MOVES", Message: "layout has no legal move"}
	}
	return nil
}
