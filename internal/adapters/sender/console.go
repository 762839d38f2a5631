package sender

import (
	"fmt"
	"io"
	"resizer/internal/core/domain"
	"sync"

	"github.com/rs/zerolog/log"
)

// ConsoleSink prints notifications to a terminal. A printed line cannot be
// taken back, so Dismiss only records that the notification expired.
type ConsoleSink struct {
	out   io.Writer
	mutex sync.Mutex
}

func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (s *ConsoleSink) Show(n domain.Notification) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	symbol := "✔"
	if n.Kind == domain.Error {
		symbol = "✖"
	}

	if _, err := fmt.Fprintf(s.out, "%s %s\n", symbol, n.Message); err != nil {
		log.Warn().Err(err).Msg("failed to print notification")
	}
}

func (s *ConsoleSink) Dismiss(n domain.Notification) {
	log.Debug().Str("message", n.Message).Msg("notification expired")
}
