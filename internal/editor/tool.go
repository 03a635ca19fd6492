package editor

import "fmt"

// Tool is the pointer action applied to a cell.
type Tool int

const (
	ToolWall Tool = iota
	ToolErase
	ToolStart
	ToolEnd
)

var toolNames = []string{"wall", "erase", "start", "end"}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolStart, ToolEnd, ToolWall, ToolErase}
}

func ParseTool(s string) (Tool, error) {
	for i, name := range toolNames {
		if name == s {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool: %s", s)
}
