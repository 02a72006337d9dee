// Package contact provides the contact form and its submission flow.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/folio/internal/clock"
	"github.com/verte-zerg/folio/internal/model"
)

const (
	// StatusTimeout is how long a status line stays up.
	StatusTimeout = 5 * time.Second
	submitTimeout = 10 * time.Second

	sentText   = "Message sent successfully!"
	failedText = "Failed to send message. Please try again."
)

// ErrNoSink is reported when the form has nowhere to deliver messages.
var ErrNoSink = errors.New("no message sink configured")

// Sink receives submitted messages.
type Sink interface {
	Submit(ctx context.Context, msg model.Message) error
}

// StatusKind classifies the status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSent
	StatusFailed
	StatusInvalid
)

const (
	fieldName = iota
	fieldEmail
	fieldBody
	fieldSubmit
	fieldCount
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#2563EB")).Padding(0, 3)
	buttonActive = buttonStyle.Bold(true).Background(lipgloss.Color("#1D4ED8")).Underline(true)
	buttonBusy   = buttonStyle.Background(lipgloss.Color("#4A4A4A"))
	sentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type submittedMsg struct {
	form *Form
	err  error
}

// Form is the contact form. It is a Bubble Tea component owned by the page model.
type Form struct {
	clock    clock.Clock
	sink     Sink
	validate *validator.Validate

	name  textinput.Model
	email textinput.Model
	body  textarea.Model

	focus   int
	focused bool

	submitting  bool
	status      string
	statusKind  StatusKind
	statusTimer clock.Timer
	disposed    bool
}

// New returns a form that delivers to sink. A nil sink makes every submit fail.
func New(c clock.Clock, sink Sink) *Form {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Your name"
	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = "your.email@example.com"
	body := textarea.New()
	body.Placeholder = "Your message..."
	body.ShowLineNumbers = false
	body.SetHeight(4)
	return &Form{
		clock:    c,
		sink:     sink,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		name:     name,
		email:    email,
		body:     body,
	}
}

// SetWidth resizes the inputs.
func (f *Form) SetWidth(width int) {
	width = max(width, 10)
	f.name.Width = width
	f.email.Width = width
	f.body.SetWidth(width)
}

// Focused reports whether the form takes keyboard input.
func (f *Form) Focused() bool {
	return f.focused
}

// Focus gives the form keyboard input, starting at the name field.
func (f *Form) Focus() tea.Cmd {
	f.focused = true
	f.focus = fieldName
	return f.applyFocus()
}

// Blur releases keyboard input.
func (f *Form) Blur() {
	f.focused = false
	f.name.Blur()
	f.email.Blur()
	f.body.Blur()
}

func (f *Form) applyFocus() tea.Cmd {
	f.name.Blur()
	f.email.Blur()
	f.body.Blur()
	if !f.focused {
		return nil
	}
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldEmail:
		return f.email.Focus()
	case fieldBody:
		return f.body.Focus()
	}
	return nil
}

func (f *Form) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.applyFocus()
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	return f.submitting
}

// Status returns the current status line and its kind.
func (f *Form) Status() (string, StatusKind) {
	return f.status, f.statusKind
}

// Message returns the message the fields currently describe.
func (f *Form) Message() model.Message {
	return model.Message{
		Name:  strings.TrimSpace(f.name.Value()),
		Email: strings.TrimSpace(f.email.Value()),
		Body:  strings.TrimSpace(f.body.Value()),
	}
}

// SetFields fills the inputs.
func (f *Form) SetFields(name, email, body string) {
	f.name.SetValue(name)
	f.email.SetValue(email)
	f.body.SetValue(body)
}

// Update handles keys while focused and submission results at any time.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case submittedMsg:
		if msg.form == f {
			f.finish(msg.err)
		}
		return nil
	case tea.KeyMsg:
		if !f.focused {
			return nil
		}
		switch msg.String() {
		case "esc":
			f.Blur()
			return nil
		case "tab":
			return f.move(1)
		case "shift+tab":
			return f.move(-1)
		case "ctrl+s":
			return f.Submit()
		case "enter":
			switch f.focus {
			case fieldSubmit:
				return f.Submit()
			case fieldName, fieldEmail:
				return f.move(1)
			}
		}
		return f.forward(msg)
	default:
		if !f.focused {
			return nil
		}
		return f.forward(msg)
	}
}

// forward passes msg to the focused field.
func (f *Form) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldEmail:
		f.email, cmd = f.email.Update(msg)
	case fieldBody:
		f.body, cmd = f.body.Update(msg)
	}
	return cmd
}

// Submit validates the fields and, if they pass, delivers them to the sink
// through the returned command. It does nothing while a submission is in flight.
func (f *Form) Submit() tea.Cmd {
	if f.submitting || f.disposed {
		return nil
	}
	msg := f.Message()
	if err := f.check(msg); err != nil {
		f.setStatus(err.Error(), StatusInvalid)
		return nil
	}
	f.submitting = true
	sink := f.sink
	return func() tea.Msg {
		if sink == nil {
			return submittedMsg{form: f, err: ErrNoSink}
		}
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return submittedMsg{form: f, err: sink.Submit(ctx, msg)}
	}
}

func (f *Form) check(msg model.Message) error {
	err := f.validate.Struct(msg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	switch first.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fieldLabel(first.Field()))
	case "email":
		return fmt.Errorf("%s must be a valid address", fieldLabel(first.Field()))
	default:
		return fmt.Errorf("%s is invalid", fieldLabel(first.Field()))
	}
}

func fieldLabel(field string) string {
	if field == "Body" {
		return "Message"
	}
	return field
}

func (f *Form) finish(err error) {
	f.submitting = false
	if f.disposed {
		return
	}
	if err != nil {
		f.setStatus(failedText, StatusFailed)
		return
	}
	f.name.Reset()
	f.email.Reset()
	f.body.Reset()
	f.setStatus(sentText, StatusSent)
}

func (f *Form) setStatus(text string, kind StatusKind) {
	if f.statusTimer != nil {
		f.statusTimer.Stop()
	}
	f.status = text
	f.statusKind = kind
	f.statusTimer = f.clock.AfterFunc(StatusTimeout, func() {
		f.statusTimer = nil
		f.status = ""
		f.statusKind = StatusNone
	})
}

// Dispose cancels the status timer. It may be called more than once.
func (f *Form) Dispose() {
	if f.disposed {
		return
	}
	f.disposed = true
	if f.statusTimer != nil {
		f.statusTimer.Stop()
		f.statusTimer = nil
	}
}

// Fields renders each form row, in order: name, email, message, button, status.
func (f *Form) Fields() []string {
	rows := []string{
		labelStyle.Render("Name") + "\n" + f.name.View(),
		labelStyle.Render("Email") + "\n" + f.email.View(),
		labelStyle.Render("Message") + "\n" + f.body.View(),
	}
	label := "Send Message"
	style := buttonStyle
	switch {
	case f.submitting:
		label = "Sending..."
		style = buttonBusy
	case f.focused && f.focus == fieldSubmit:
		style = buttonActive
	}
	rows = append(rows, style.Render(label))

	status := ""
	switch f.statusKind {
	case StatusSent:
		status = sentStyle.Render(f.status)
	case StatusFailed, StatusInvalid:
		status = failedStyle.Render(f.status)
	}
	return append(rows, status)
}
