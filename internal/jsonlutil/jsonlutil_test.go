package jsonlutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type row struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestStartWritesOneLinePerValue(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[row](&buf, 0, nil)
	in <- row{"a", 1}
	in <- row{"b<c", 2}
	close(in)
	require.NoError(t, <-done)
	require.Equal(t, "{\"name\":\"a\",\"n\":1}\n{\"name\":\"b<c\",\"n\":2}\n", buf.String())
}

type failWriter struct{}

var errSink = errors.New("sink closed")

func (failWriter) Write([]byte) (int, error) { return 0, errSink }

func TestStartDrainsAfterFailure(t *testing.T) {
	in, done := Start[row](failWriter{}, 1, nil)
	for i := 0; i < 1000; i++ {
		in <- row{"x", i}
	}
	close(in)
	require.ErrorIs(t, <-done, errSink)

	in, done = Start[row](failWriter{}, 1, func(err error) bool { return errors.Is(err, errSink) })
	in <- row{"x", 1}
	close(in)
	require.NoError(t, <-done)
}
