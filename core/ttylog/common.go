// Package ttylog records terminal sessions and plays them back.
package ttylog

import (
	"io"
	"log"
	"sync"
	"time"
)

// FD identifies the stream an Entry belongs to.
type FD int

const (
	FDStdin  FD = 0
	FDStdout FD = 1
	FDStderr FD = 2
)

// Entry is a chunk of terminal I/O.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the
	// source has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	return newPlayback(maxSleep, time.Sleep, next)
}

func newPlayback(maxSleep time.Duration, sleep func(time.Duration), next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(e *Entry) error {
		once.Do(func() {
			prevTimeMicros = e.TimestampMicros
		})

		delta := e.TimestampMicros - prevTimeMicros
		prevTimeMicros = e.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			sleep(sleepDuration)
		}

		return next(e)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(e *Entry) error {
		if e.FD == FDStdin {
			return nil
		}
		_, err := w.Write(e.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		e, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(e); err != nil {
			return err
		}
	}
}

// Recorder copies the I/O passing through wrapped streams to a LogSink.
type Recorder struct {
	mutex  sync.Mutex
	output LogSink

	// Now returns the event time, defaults to time.Now.
	Now func() time.Time
}

// NewRecorder creates a recorder that forwards all events to output.
func NewRecorder(output LogSink) *Recorder {
	return &Recorder{output: output}
}

func (r *Recorder) record(fd FD, data []byte) {
	if len(data) == 0 {
		return
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	err := r.output(&Entry{
		TimestampMicros: now().UnixMicro(),
		FD:              fd,
		Data:            append([]byte(nil), data...),
	})
	if err != nil {
		log.Print(err)
	}
}

// Reader records everything read from rd as fd.
func (r *Recorder) Reader(fd FD, rd io.Reader) io.Reader {
	return &recorderReader{r: r, fd: fd, wrapped: rd}
}

// Writer records everything successfully written to w as fd.
func (r *Recorder) Writer(fd FD, w io.Writer) io.Writer {
	return &recorderWriter{r: r, fd: fd, wrapped: w}
}

type recorderReader struct {
	r       *Recorder
	fd      FD
	wrapped io.Reader
}

func (rc *recorderReader) Read(p []byte) (int, error) {
	n, err := rc.wrapped.Read(p)
	rc.r.record(rc.fd, p[:n])
	return n, err
}

type recorderWriter struct {
	r       *Recorder
	fd      FD
	wrapped io.Writer
}

func (rc *recorderWriter) Write(p []byte) (int, error) {
	n, err := rc.wrapped.Write(p)
	rc.r.record(rc.fd, p[:n])
	return n, err
}
