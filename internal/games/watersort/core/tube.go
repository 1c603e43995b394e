// Package core implements the water sort puzzle model: tubes, layouts,
// pour rules and deterministic level generation.
// It contains no UI or storage dependencies.
package core

import (
	"fmt"
	"strings"
)

// Tube is a bounded stack of color units. The last element is the top.
type Tube []Color

// Top returns the top color of the tube.
func (t Tube) Top() (Color, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1], true
}

// RunLength counts the contiguous same-colored units at the top.
func (t Tube) RunLength() int {
	if len(t) == 0 {
		return 0
	}
	top := t[len(t)-1]
	n := 0
	for i := len(t) - 1; i >= 0 && t[i] == top; i-- {
		n++
	}
	return n
}

// IsUniform reports whether every unit has the same color. Empty tubes are uniform.
func (t Tube) IsUniform() bool {
	for i := 1; i < len(t); i++ {
		if t[i] != t[0] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (t Tube) Clone() Tube {
	if t == nil {
		return Tube{}
	}
	out := make(Tube, len(t))
	copy(out, t)
	return out
}

// Layout is the ordered set of tubes making up a puzzle.
// Operations never modify a Layout in place; they return a new one that may
// share untouched tubes with the original.
type Layout []Tube

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for i, t := range l {
		out[i] = t.Clone()
	}
	return out
}

// Equal reports whether two layouts hold the same units in the same tubes.
func (l Layout) Equal(other Layout) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if len(l[i]) != len(other[i]) {
			return false
		}
		for j := range l[i] {
			if l[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Key returns a canonical encoding usable as a map key.
// Each unit is one byte and tubes are terminated by 0xFF, which is never a color.
func (l Layout) Key() string {
	n := len(l)
	for _, t := range l {
		n += len(t)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, t := range l {
		for _, c := range t {
			sb.WriteByte(byte(c))
		}
		sb.WriteByte(0xFF)
	}
	return sb.String()
}

// ColorCounts returns how many units of each color the layout holds.
func (l Layout) ColorCounts() map[Color]int {
	counts := make(map[Color]int)
	for _, t := range l {
		for _, c := range t {
			counts[c]++
		}
	}
	return counts
}

// Units returns the total number of units across all tubes.
func (l Layout) Units() int {
	n := 0
	for _, t := range l {
		n += len(t)
	}
	return n
}

// String renders the layout as "[r r b] [] ..." for logs and CLI output.
func (l Layout) String() string {
	parts := make([]string, len(l))
	for i, t := range l {
		names := make([]string, len(t))
		for j, c := range t {
			names[j] = c.String()
		}
		parts[i] = "[" + strings.Join(names, " ") + "]"
	}
	return strings.Join(parts, " ")
}

// Move records a single pour.
type Move struct {
	From   int   `json:"from"`
	To     int   `json:"to"`
	Amount int   `json:"amount"`
	Color  Color `json:"color"`
}

func (m Move) String() string {
	return fmt.Sprintf("%d->%d (%d %s)", m.From, m.To, m.Amount, m.Color)
}

func (l Layout) inRange(i int) bool {
	return i >= 0 && i < len(l)
}

// CanMove reports whether the top run of src may be poured into dst.
// Out-of-range indices are never legal.
func (l Layout) CanMove(capacity, src, dst int) bool {
	if src == dst || !l.inRange(src) || !l.inRange(dst) {
		return false
	}
	from, to := l[src], l[dst]
	if len(from) == 0 || len(to) >= capacity {
		return false
	}
	if len(to) == 0 {
		return true
	}
	return to[len(to)-1] == from[len(from)-1]
}

// PourAmount returns how many units a pour from src to dst transfers,
// or 0 when the pour is illegal.
func (l Layout) PourAmount(capacity, src, dst int) int {
	if !l.CanMove(capacity, src, dst) {
		return 0
	}
	return min(l[src].RunLength(), capacity-len(l[dst]))
}

// Apply pours the top run of src into dst, limited by the free space in dst.
// An illegal pour returns the receiver unchanged and false.
func (l Layout) Apply(capacity, src, dst int) (Layout, Move, bool) {
	amount := l.PourAmount(capacity, src, dst)
	if amount < 1 {
		return l, Move{}, false
	}
	from := l[src]
	color := from[len(from)-1]
	m := Move{From: src, To: dst, Amount: amount, Color: color}
	return l.transfer(src, dst, amount, color), m, true
}

// Reverse undoes a move previously produced by Apply.
// It refuses moves whose destination does not end with Amount units of Color.
func (l Layout) Reverse(m Move) (Layout, bool) {
	if m.From == m.To || m.Amount < 1 || !l.inRange(m.From) || !l.inRange(m.To) {
		return l, false
	}
	to := l[m.To]
	if len(to) < m.Amount {
		return l, false
	}
	for _, c := range to[len(to)-m.Amount:] {
		if c != m.Color {
			return l, false
		}
	}
	return l.transfer(m.To, m.From, m.Amount, m.Color), true
}

// transfer moves amount units of color from the top of src to dst.
// Only the two touched tubes are reallocated.
func (l Layout) transfer(src, dst, amount int, color Color) Layout {
	out := make(Layout, len(l))
	copy(out, l)

	from := l[src]
	out[src] = append(Tube{}, from[:len(from)-amount]...)

	to := make(Tube, len(l[dst]), len(l[dst])+amount)
	copy(to, l[dst])
	for i := 0; i < amount; i++ {
		to = append(to, color)
	}
	out[dst] = to
	return out
}

// IsWon reports whether every tube is empty or full of a single color.
func (l Layout) IsWon(capacity int) bool {
	for _, t := range l {
		if len(t) == 0 {
			continue
		}
		if len(t) != capacity || !t.IsUniform() {
			return false
		}
	}
	return true
}

// HasLegalMove reports whether any pour is possible.
func (l Layout) HasLegalMove(capacity int) bool {
	for src := range l {
		for dst := range l {
			if l.CanMove(capacity, src, dst) {
				return true
			}
		}
	}
	return false
}

// LegalMoves lists every legal pour in (source, destination) index order.
func (l Layout) LegalMoves(capacity int) []Move {
	var moves []Move
	for src := range l {
		for dst := range l {
			amount := l.PourAmount(capacity, src, dst)
			if amount == 0 {
				continue
			}
			top, _ := l[src].Top()
			moves = append(moves, Move{From: src, To: dst, Amount: amount, Color: top})
		}
	}
	return moves
}
