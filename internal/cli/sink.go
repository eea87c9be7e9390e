package cli

import (
	"fmt"
	"io"
	"sync"
)

// previewSink stands in for the platform pasteboard in the harness. It keeps
// the value in memory and only announces transitions, never the secret.
type previewSink struct {
	mu    sync.Mutex
	out   io.Writer
	value string
}

func (s *previewSink) WriteString(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case text == "" && s.value != "":
		fmt.Fprintln(s.out, "[clipboard] cleared")
	case text != "":
		fmt.Fprintf(s.out, "[clipboard] secret copied (%d bytes)\n", len(text))
	}
	s.value = text
	return nil
}
