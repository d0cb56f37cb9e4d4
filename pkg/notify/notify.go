// Package notify surfaces short user-facing messages, separate from the
// diagnostic log on stderr.
package notify

import "fmt"

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string)
}

// Console writes notices to standard output.
type Console struct{}

func (Console) Notify(message string) {
	fmt.Println(message)
}
