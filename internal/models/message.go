package models

// MessageType classifies the result returned by the intake webhook
type MessageType string

const (
	MessageTypeError           MessageType = "error"
	MessageTypeValidationError MessageType = "validation_error"
	MessageTypeSuccess         MessageType = "success"
)

// Message is a submission result produced by the intake webhook
type Message struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

const (
	panelTitle             = "Photography Studio Assistant"
	panelBorderDestructive = "border-destructive"
	panelBorderPrimary     = "border-primary"
)

// ResultPanel is the inline result box rendered under the form
type ResultPanel struct {
	Variant     MessageType `json:"variant"`
	BorderClass string      `json:"borderClass"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
}

// ResultView decides how a submission result is shown: validation errors pop a
// toast, everything else goes to the inline panel once the submission is over.
type ResultView struct {
	Toast string       `json:"toast,omitempty"`
	Panel *ResultPanel `json:"panel,omitempty"`
}

// NewResultView returns the view for msg. A nil msg renders nothing.
func NewResultView(msg *Message, isSubmitting bool) ResultView {
	if msg == nil {
		return ResultView{}
	}

	if msg.Type == MessageTypeValidationError {
		return ResultView{Toast: msg.Message}
	}

	if isSubmitting {
		return ResultView{}
	}

	border := panelBorderPrimary
	if msg.Type == MessageTypeError {
		border = panelBorderDestructive
	}

	return ResultView{
		Panel: &ResultPanel{
			Variant:     msg.Type,
			BorderClass: border,
			Title:       panelTitle,
			Message:     msg.Message,
		},
	}
}
