// Package panel holds the client-side state of the tool panel: the tool
// listing, in-flight executions and the configuration editing session.
//
// Nothing here performs I/O. Callers begin a transition, issue the external
// call themselves and feed its result back, so the same state drives both the
// TUI update loop and the one-shot CLI.
package panel

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// Notice is a message for the operator, the panel's equivalent of an alert.
type Notice struct {
	Kind  NoticeKind
	Title string
	Body  string
}

func (n Notice) IsError() bool {
	return n.Kind == NoticeError
}

func (n Notice) String() string {
	if n.Body == "" {
		return n.Title
	}
	return n.Title + "\n\n" + n.Body
}

// State is the single record threaded through the update cycle. Notices
// queue up because results keep arriving while one is on screen.
type State struct {
	List    *ToolList
	Exec    *Executions
	Editor  *Editor
	notices []Notice
}

func NewState() *State {
	return &State{
		List:   NewToolList(),
		Exec:   NewExecutions(),
		Editor: NewEditor(),
	}
}

func (s *State) Notify(n Notice) {
	s.notices = append(s.notices, n)
}

// Notice returns the notice currently shown, if any.
func (s *State) Notice() *Notice {
	if len(s.notices) == 0 {
		return nil
	}
	n := s.notices[0]
	return &n
}

func (s *State) DismissNotice() {
	if len(s.notices) > 0 {
		s.notices = s.notices[1:]
	}
}

func (s *State) PendingNotices() int {
	return len(s.notices)
}
