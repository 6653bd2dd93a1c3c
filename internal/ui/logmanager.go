package ui

import (
	"fmt"

	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
)

// DefaultMaxLogMessages bounds the status line history.
const DefaultMaxLogMessages = 100

// LogUIManager keeps a short history of status messages and shows one of
// them in the status bar. Every message is also written to the logger.
type LogUIManager struct {
	logMessages     []string
	currentLogIndex int
	maxLogMessages  int
	logger          *log.Logger

	statusLogLabel   *widget.Label
	statusLogUpBtn   *widget.Button
	statusLogDownBtn *widget.Button
}

// NewLogUIManager creates a manager driving the given status widgets.
func NewLogUIManager(logger *log.Logger, logLabel *widget.Label, upBtn, downBtn *widget.Button, maxMessages int) *LogUIManager {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxLogMessages
	}
	return &LogUIManager{
		logMessages:      make([]string, 0, maxMessages),
		currentLogIndex:  -1,
		maxLogMessages:   maxMessages,
		logger:           logger,
		statusLogLabel:   logLabel,
		statusLogUpBtn:   upBtn,
		statusLogDownBtn: downBtn,
	}
}

// AddLogMessage records message and shows it. Call on the UI goroutine.
func (lm *LogUIManager) AddLogMessage(message string) {
	if lm.logger != nil {
		lm.logger.Info(message)
	}
	lm.logMessages = append(lm.logMessages, message)
	if len(lm.logMessages) > lm.maxLogMessages {
		lm.logMessages = lm.logMessages[len(lm.logMessages)-lm.maxLogMessages:]
	}
	lm.currentLogIndex = len(lm.logMessages) - 1
	lm.UpdateLogDisplay()
}

// Messages returns the retained history, oldest first.
func (lm *LogUIManager) Messages() []string {
	return append([]string(nil), lm.logMessages...)
}

// UpdateLogDisplay refreshes the label and the history buttons.
func (lm *LogUIManager) UpdateLogDisplay() {
	if lm.statusLogLabel == nil || lm.statusLogUpBtn == nil || lm.statusLogDownBtn == nil {
		return
	}
	if len(lm.logMessages) == 0 {
		lm.statusLogLabel.SetText("")
		lm.statusLogUpBtn.Disable()
		lm.statusLogDownBtn.Disable()
		return
	}

	if lm.currentLogIndex < 0 {
		lm.currentLogIndex = 0
	} else if lm.currentLogIndex >= len(lm.logMessages) {
		lm.currentLogIndex = len(lm.logMessages) - 1
	}

	lm.statusLogLabel.SetText(fmt.Sprintf("[%d/%d] %s", lm.currentLogIndex+1, len(lm.logMessages), lm.logMessages[lm.currentLogIndex]))
	setEnabled(lm.statusLogUpBtn, lm.currentLogIndex > 0)
	setEnabled(lm.statusLogDownBtn, lm.currentLogIndex < len(lm.logMessages)-1)
}

// ShowPreviousLogMessage steps back through the history.
func (lm *LogUIManager) ShowPreviousLogMessage() {
	if len(lm.logMessages) == 0 || lm.currentLogIndex <= 0 {
		return
	}
	lm.currentLogIndex--
	lm.UpdateLogDisplay()
}

// ShowNextLogMessage steps forward through the history.
func (lm *LogUIManager) ShowNextLogMessage() {
	if len(lm.logMessages) == 0 || lm.currentLogIndex >= len(lm.logMessages)-1 {
		return
	}
	lm.currentLogIndex++
	lm.UpdateLogDisplay()
}
