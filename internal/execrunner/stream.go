package execrunner

import (
	"bufio"
	"context"
	"io"
	"sync"

	"pkt.systems/pslog"
)

// lineStream reads the merged output pipe on a dedicated goroutine and hands
// complete lines to the consumer one at a time, preserving child order.
type lineStream struct {
	lines chan string
	errMu sync.Mutex
	err   error
	log   pslog.Logger
}

func newLineStream(reader io.ReadCloser, log pslog.Logger) *lineStream {
	stream := &lineStream{
		lines: make(chan string, 256),
		log:   log,
	}
	go stream.read(reader)
	return stream
}

func (s *lineStream) read(reader io.ReadCloser) {
	defer close(s.lines)
	defer func() { _ = reader.Close() }()
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		// Blank lines from the child are still one event each.
		s.lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		if s.log != nil {
			s.log.Warn("output read failed", "err", err)
		}
		s.setErr(err)
	}
}

func (s *lineStream) setErr(err error) {
	if err == nil {
		return
	}
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Next returns the next output line, or io.EOF once the child closed its
// output stream and all buffered lines were consumed.
func (s *lineStream) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if ok {
			return line, nil
		}
		s.errMu.Lock()
		err := s.err
		s.errMu.Unlock()
		if err != nil {
			return "", err
		}
		return "", io.EOF
	}
}

func (s *lineStream) Close() error {
	return nil
}
