package events

import "time"

// Step is one stage of a merge run.
type Step string

// Merge run steps, in order. Error is terminal and replaces the rest.
const (
	StepIdle             Step = "idle"
	StepExtractingText   Step = "extracting_text"
	StepAnalyzingSeating Step = "analyzing_seating"
	StepAnalyzingMedia   Step = "analyzing_media"
	StepMerging          Step = "merging"
	StepComplete         Step = "complete"
	StepError            Step = "error"
)

// String returns the string representation of a Step.
func (s Step) String() string {
	return string(s)
}

// Done reports whether no further transitions follow.
func (s Step) Done() bool {
	return s == StepComplete || s == StepError
}

// Status is a progress report of the current merge run.
type Status struct {
	Step      Step      `json:"step"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Default progress messages.
var stepMessages = map[Step]string{
	StepIdle:             "Bereit",
	StepExtractingText:   "Lese PDF Inhalte...",
	StepAnalyzingSeating: "Analysiere Raumplanung mit KI...",
	StepAnalyzingMedia:   "Analysiere Medientechnik mit KI...",
	StepMerging:          "Führe Daten zusammen...",
	StepComplete:         "Fertig",
	StepError:            "Fehler bei der Verarbeitung.",
}

// NewStatus creates a status for step with its default message.
func NewStatus(step Step) Status {
	return Status{Step: step, Message: stepMessages[step], UpdatedAt: time.Now()}
}

// ErrorStatus creates the terminal status for a failed run.
func ErrorStatus(err error) Status {
	s := NewStatus(StepError)
	if err != nil {
		s.Error = err.Error()
	}
	return s
}
