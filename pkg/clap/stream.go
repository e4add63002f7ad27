package clap

import "fmt"

// IStream is a host provided input stream. Read returns the number of bytes
// read, 0 at end of stream and a negative value on error.
type IStream interface {
	Read(buf []byte) int64
}

// OStream is a host provided output stream. Write returns the number of
// bytes written or a negative value on error.
type OStream interface {
	Write(buf []byte) int64
}

// ReadChunkSize is the chunk size used by ReadAll.
const ReadChunkSize = 256

// ReadAll reads s until it reports end of stream.
func ReadAll(s IStream) ([]byte, error) {
	var result []byte
	chunk := make([]byte, ReadChunkSize)

	for {
		n := s.Read(chunk)
		if n < 0 {
			return nil, fmt.Errorf("read after %d bytes: %w", len(result), ErrStreamRead)
		}
		if n == 0 {
			return result, nil
		}
		if n > int64(len(chunk)) {
			n = int64(len(chunk))
		}
		result = append(result, chunk[:n]...)
	}
}

// WriteAll writes data to s, looping over partial writes.
func WriteAll(s OStream, data []byte) error {
	written := 0
	for written < len(data) {
		n := s.Write(data[written:])
		if n <= 0 {
			return fmt.Errorf("wrote %d of %d bytes: %w", written, len(data), ErrShortWrite)
		}
		written += int(n)
	}
	return nil
}

// MemoryStream is an in-memory IStream and OStream. MaxWrite and MaxRead
// cap the bytes moved per call when positive.
type MemoryStream struct {
	data     []byte
	pos      int
	MaxWrite int
	MaxRead  int
	Fail     bool
}

// NewMemoryStream creates a stream positioned at the start of data.
func NewMemoryStream(data []byte) *MemoryStream {
	return &MemoryStream{data: append([]byte(nil), data...)}
}

// Write appends buf.
func (m *MemoryStream) Write(buf []byte) int64 {
	if m.Fail {
		return -1
	}
	n := len(buf)
	if m.MaxWrite > 0 && n > m.MaxWrite {
		n = m.MaxWrite
	}
	m.data = append(m.data, buf[:n]...)
	return int64(n)
}

// Read copies the next bytes into buf.
func (m *MemoryStream) Read(buf []byte) int64 {
	if m.Fail {
		return -1
	}
	n := copy(buf, m.data[m.pos:])
	if m.MaxRead > 0 && n > m.MaxRead {
		n = m.MaxRead
	}
	m.pos += n
	return int64(n)
}

// Bytes returns everything written so far.
func (m *MemoryStream) Bytes() []byte {
	return m.data
}

// Rewind moves the read position back to the start.
func (m *MemoryStream) Rewind() {
	m.pos = 0
}
