package notify

import "fmt"

// Logger interface for notify operations
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type defLogger struct{}

func (l defLogger) Debug(msg string, args ...any) {
	fmt.Printf("[DBG][NOTIFY] "+newline(msg), args...)
}
func (l defLogger) Info(msg string, args ...any) {
	fmt.Printf("[INF][NOTIFY] "+newline(msg), args...)
}
func (l defLogger) Warn(msg string, args ...any) {
	fmt.Printf("[WRN][NOTIFY] "+newline(msg), args...)
}
func (l defLogger) Error(msg string, args ...any) {
	fmt.Printf("[ERR][NOTIFY] "+newline(msg), args...)
}

func newline(s string) string {
	if s == "" || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}
