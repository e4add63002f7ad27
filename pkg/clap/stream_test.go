package clap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllChunks(t *testing.T) {
	payload := bytes.Repeat([]byte{1, 2, 3, 4, 5}, 300)
	s := NewMemoryStream(payload)
	s.MaxRead = 100

	got, err := ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadAllEmpty(t *testing.T) {
	got, err := ReadAll(NewMemoryStream(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadAllFailure(t *testing.T) {
	s := NewMemoryStream([]byte{1, 2, 3})
	s.Fail = true

	_, err := ReadAll(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStreamRead))
}

func TestWriteAllPartialWrites(t *testing.T) {
	s := NewMemoryStream(nil)
	s.MaxWrite = 7
	payload := bytes.Repeat([]byte{9}, 50)

	require.NoError(t, WriteAll(s, payload))
	assert.Equal(t, payload, s.Bytes())
}

func TestWriteAllFailure(t *testing.T) {
	s := NewMemoryStream(nil)
	s.Fail = true

	err := WriteAll(s, []byte{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShortWrite))
}
