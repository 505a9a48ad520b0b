package render

import (
	"fmt"

	"github.com/nsf/termbox-go"
)

// Screen is a Canvas backed by the termbox terminal. Only one Screen can
// be open per process.
type Screen struct{}

// OpenScreen initializes the terminal for drawing.
func OpenScreen() (*Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()
	return &Screen{}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) Size() (int, int) {
	return termbox.Size()
}

func (s *Screen) Clear() {
	_ = termbox.Clear(Background, Background)
}

func (s *Screen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

// Flush pushes the back buffer to the terminal.
func (s *Screen) Flush() {
	_ = termbox.Flush()
}

// PollEvent blocks until the next keyboard or resize event.
func (s *Screen) PollEvent() termbox.Event {
	return termbox.PollEvent()
}

// Interrupt unblocks a pending PollEvent, used on shutdown.
func (s *Screen) Interrupt() {
	termbox.Interrupt()
}
