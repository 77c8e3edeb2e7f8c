package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/internal/conv"
	"github.com/hupe1980/kmeanspp/internal/hash"
)

const (
	// Magic identifies snapshot files (ASCII: "KMPP").
	Magic = 0x50504d4b
	// Version is the current file format version.
	Version = 1

	fixedHeaderSize = 20
	maxCodecName    = 255
)

var (
	// ErrCorrupt is returned when a snapshot fails structural or checksum
	// validation.
	ErrCorrupt = errors.New("snapshot: corrupt")
	// ErrUnsupportedVersion is returned for snapshots written by a newer
	// format version.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
)

// header is the decoded form of the bytes preceding the body.
type header struct {
	Version     uint16
	Compression Compression
	Codec       string
	RawLen      uint32
	BodyLen     uint32
	Checksum    uint32
}

func (h header) size() int {
	return fixedHeaderSize + len(h.Codec)
}

// encodeFrame prepends the header to body and fills in lengths and checksum.
func encodeFrame(h header, body []byte) ([]byte, error) {
	if len(h.Codec) == 0 || len(h.Codec) > maxCodecName {
		return nil, fmt.Errorf("snapshot: invalid codec name %q", h.Codec)
	}

	bodyLen, err := conv.IntToUint32(len(body))
	if err != nil {
		return nil, fmt.Errorf("snapshot: body length: %w", err)
	}
	h.BodyLen = bodyLen
	h.Checksum = hash.CRC32C(body)

	buf := make([]byte, h.size()+len(body))
	binary.LittleEndian.PutUint32(buf[0:], Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	buf[6] = byte(h.Compression)
	buf[7] = byte(len(h.Codec))
	off := 8 + copy(buf[8:], h.Codec)
	binary.LittleEndian.PutUint32(buf[off:], h.RawLen)
	binary.LittleEndian.PutUint32(buf[off+4:], h.BodyLen)
	binary.LittleEndian.PutUint32(buf[off+8:], h.Checksum)
	copy(buf[off+12:], body)
	return buf, nil
}

// decodeFrame validates the header and checksum and returns the stored body.
func decodeFrame(data []byte) (header, []byte, error) {
	var h header
	if len(data) < fixedHeaderSize {
		return h, nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	if binary.LittleEndian.Uint32(data[0:]) != Magic {
		return h, nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}

	h.Version = binary.LittleEndian.Uint16(data[4:])
	if h.Version == 0 || h.Version > Version {
		return h, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	h.Compression = Compression(data[6])
	nameLen := int(data[7])
	if len(data) < fixedHeaderSize+nameLen {
		return h, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h.Codec = string(data[8 : 8+nameLen])

	off := 8 + nameLen
	h.RawLen = binary.LittleEndian.Uint32(data[off:])
	h.BodyLen = binary.LittleEndian.Uint32(data[off+4:])
	h.Checksum = binary.LittleEndian.Uint32(data[off+8:])

	body := data[h.size():]
	if uint64(len(body)) != uint64(h.BodyLen) {
		return h, nil, fmt.Errorf("%w: body is %d bytes, header says %d", ErrCorrupt, len(body), h.BodyLen)
	}
	if sum := hash.CRC32C(body); sum != h.Checksum {
		return h, nil, fmt.Errorf("%w: checksum mismatch (got %08x, want %08x)", ErrCorrupt, sum, h.Checksum)
	}
	return h, body, nil
}
