package iocli

//go:generate moq -out io_mock.go . IO

// IO abstracts the command runners' terminal output.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
}
