package panel

import (
	"sort"
	"strings"
	"time"

	"github.com/drujensen/toolpanel/internal/domain/entities"
)

type LoadPhase int

const (
	LoadIdle LoadPhase = iota
	LoadLoading
	LoadReady
)

func (p LoadPhase) String() string {
	switch p {
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	default:
		return "idle"
	}
}

// ToolList holds the most recent listing. A failed listing resolves to an
// empty ready list, so "no tools" and "listing failed" look the same here.
type ToolList struct {
	phase    LoadPhase
	tools    []*entities.Tool
	loadedAt time.Time
}

func NewToolList() *ToolList {
	return &ToolList{tools: []*entities.Tool{}}
}

func (l *ToolList) BeginLoad() {
	l.phase = LoadLoading
}

func (l *ToolList) Resolve(tools []*entities.Tool, at time.Time) {
	sorted := make([]*entities.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool != nil {
			sorted = append(sorted, tool)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	l.tools = sorted
	l.loadedAt = at
	l.phase = LoadReady
}

func (l *ToolList) Phase() LoadPhase {
	return l.phase
}

func (l *ToolList) Loading() bool {
	return l.phase == LoadLoading
}

// Empty is true only once a listing has resolved with no tools.
func (l *ToolList) Empty() bool {
	return l.phase == LoadReady && len(l.tools) == 0
}

func (l *ToolList) Tools() []*entities.Tool {
	out := make([]*entities.Tool, len(l.tools))
	copy(out, l.tools)
	return out
}

func (l *ToolList) LoadedAt() time.Time {
	return l.loadedAt
}

func (l *ToolList) Find(name string) *entities.Tool {
	for _, tool := range l.tools {
		if tool.Name == name {
			return tool
		}
	}
	return nil
}
