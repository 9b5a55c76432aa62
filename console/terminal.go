package console

import (
	"os"

	"golang.org/x/term"
)

// SecretReader reads one answer without echoing it.
type SecretReader func() (string, error)

// TerminalSecretReader returns a reader that disables echo on f, or nil when
// f is not an interactive terminal.
func TerminalSecretReader(f *os.File) SecretReader {
	if f == nil {
		return nil
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func() (string, error) {
		raw, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}
