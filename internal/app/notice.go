package app

import "time"

// NoticeDuration is how long a banner stays visible.
const NoticeDuration = 5 * time.Second

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelDanger
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarn:
		return "warn"
	case LevelDanger:
		return "danger"
	default:
		return "info"
	}
}

// Notice is a transient message shown above the panels.
type Notice struct {
	Text  string
	Level Level
	At    time.Time
}

func (a *App) notify(level Level, text string) {
	a.notice = Notice{Text: text, Level: level, At: a.now()}
}

// Notice returns the current banner while it is younger than NoticeDuration.
func (a *App) Notice() (Notice, bool) {
	if a.notice.Text == "" || a.now().Sub(a.notice.At) >= NoticeDuration {
		return Notice{}, false
	}
	return a.notice, true
}
