package commands

import "fmt"

// ErrExit carries a process exit disposition through cobra's error
// path. main unwraps it and exits with the code instead of printing
// an error message (the run summary was already shown).
type ErrExit struct {
	Code int
}

func (e *ErrExit) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
