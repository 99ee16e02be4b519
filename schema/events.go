package schema

import (
	"fmt"
	"time"
)

// OutputEvent carries one line of child-process output for a job.
type OutputEvent struct {
	Label string `json:"label"`
	Line  string `json:"line"`
}

// JobEvent is the single terminal event for a job.
type JobEvent struct {
	Label    string `json:"label"`
	ExitCode int    `json:"exit_code"`
}

// LogLevel is the severity shown in the console area.
type LogLevel string

const (
	// LevelInfo marks progress and status messages.
	LevelInfo LogLevel = "INFO"
	// LevelSuccess marks completed operations.
	LevelSuccess LogLevel = "SUCCESS"
	// LevelError marks reported failures.
	LevelError LogLevel = "ERROR"
)

// LogEvent is a timestamped, leveled console message.
type LogEvent struct {
	Time    time.Time `json:"time"`
	Level   LogLevel  `json:"level"`
	Message string    `json:"message"`
}

// NewLogEvent stamps a console message with the current time.
func NewLogEvent(level LogLevel, message string) LogEvent {
	return LogEvent{Time: time.Now(), Level: level, Message: message}
}

// String renders the event in the console format.
func (e LogEvent) String() string {
	return fmt.Sprintf("[%s] [%s] %s", e.Time.Format("15:04:05"), e.Level, e.Message)
}
