// Package greet builds the greeting message shared by every salute surface.
package greet

// DefaultName is greeted when no name is supplied.
const DefaultName = "World"

const (
	prefix = "Hello, "
	suffix = "!"
)

// Greet returns the greeting for name. Any text is accepted, including "".
func Greet(name string) string {
	return prefix + name + suffix
}
