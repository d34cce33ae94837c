package organizer

// State 整理流程的状态
type State int

const (
	StateInit State = iota
	StateEnsuringDirectories
	StateScanning
	StateEmptySource
	StateClassifying
	StatePreview
	StateMoving
	StateStats
	StateDone
)

var stateNames = map[State]string{
	StateInit:                "init",
	StateEnsuringDirectories: "ensuring-directories",
	StateScanning:            "scanning",
	StateEmptySource:         "empty-source",
	StateClassifying:         "classifying",
	StatePreview:             "preview",
	StateMoving:              "moving",
	StateStats:               "stats",
	StateDone:                "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal 是否为终止状态
func (s State) Terminal() bool {
	switch s {
	case StateEmptySource, StatePreview, StateStats, StateDone:
		return true
	}
	return false
}
