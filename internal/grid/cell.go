package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// Cell is a grid coordinate. X is the column, Y the row.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON accepts [x, y]. Integral floats such as 3.0 are accepted
// since numeric backends frequently serialise coordinates that way.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrCellFormat, err)
	}
	return c.fromPair(raw)
}

func (c Cell) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range [2]int{c.X, c.Y} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return node, nil
}

func (c *Cell) UnmarshalYAML(value *yaml.Node) error {
	var raw []float64
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrCellFormat, err)
	}
	return c.fromPair(raw)
}

func (c *Cell) fromPair(raw []float64) error {
	if len(raw) != 2 {
		return fmt.Errorf("%w: got %d elements", ErrCellFormat, len(raw))
	}
	for _, v := range raw {
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-integral coordinate %v", ErrCellFormat, v)
		}
	}
	c.X, c.Y = int(raw[0]), int(raw[1])
	return nil
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

func (s CellSet) Add(c Cell)    { s[c] = struct{}{} }
func (s CellSet) Remove(c Cell) { delete(s, c) }
func (s CellSet) Len() int      { return len(s) }

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in row-major order.
func (s CellSet) Sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
