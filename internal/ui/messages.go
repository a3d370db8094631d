package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/i474232898/trip-weather/internal/trip"
)

// tripSubmittedMsg is sent when a submission has finished
type tripSubmittedMsg struct {
	text string
	err  error
}

// submitTrip runs the blocking submission off the UI loop
func submitTrip(s Submitter, req trip.SubmitRequest) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Submit(context.Background(), req)
		if err != nil {
			return tripSubmittedMsg{err: err}
		}
		return tripSubmittedMsg{text: res.Text()}
	}
}
