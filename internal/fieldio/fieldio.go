// Package fieldio reads and writes phase stacks as binary files.
//
// Layout, all integers little-endian:
//
//	magic   [4]byte "APHS"
//	version uint16
//	codec   uint8
//	_       uint8
//	shape   [4]uint32  T, Z, Y, XHalf
//	count   uint32     number of momenta
//	momenta [count][3]int32
//	payload            count·2·T·Z·Y·XHalf complex128 values (<c16),
//	                   compressed as a single stream when codec != none
package fieldio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	algophase "github.com/cwbudde/algo-phase"
)

const version = 1

// maxElements bounds the payload a header may announce (16 GiB of <c16).
const maxElements = 1 << 30

// readBatch is the number of values decoded per read. Buffers grow only as
// data actually arrives, never from header counts alone.
const readBatch = 1 << 16

var magic = [4]byte{'A', 'P', 'H', 'S'}

var (
	ErrBadMagic     = errors.New("fieldio: not a phase stack file")
	ErrVersion      = errors.New("fieldio: unsupported version")
	ErrUnknownCodec = errors.New("fieldio: unknown codec")
	ErrCorrupt      = errors.New("fieldio: corrupt header")
)

// Codec selects payload compression.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecZstd
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// ParseCodec maps "none", "zstd" or "lz4" to a Codec.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "raw":
		return CodecNone, nil
	case "zstd", "zst":
		return CodecZstd, nil
	case "lz4":
		return CodecLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, s)
	}
}

type header struct {
	Magic   [4]byte
	Version uint16
	Codec   uint8
	_       uint8
	Shape   [4]uint32
	Count   uint32
}

// Write encodes stack to w.
func Write(w io.Writer, stack *algophase.FieldStack, codec Codec) error {
	if stack == nil {
		return algophase.ErrNilField
	}

	if codec > CodecLZ4 {
		return fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(codec))
	}

	s := stack.Shape
	h := header{
		Magic:   magic,
		Version: version,
		Codec:   uint8(codec),
		Shape:   [4]uint32{uint32(s.T), uint32(s.Z), uint32(s.Y), uint32(s.XHalf)},
		Count:   uint32(len(stack.Momenta)),
	}

	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	moms := make([][3]int32, len(stack.Momenta))
	for i, p := range stack.Momenta {
		for j := range p {
			if p[j] < math.MinInt32 || p[j] > math.MaxInt32 {
				return fmt.Errorf("%w: momentum %v exceeds int32", algophase.ErrDomain, p)
			}
			moms[i][j] = int32(p[j])
		}
	}

	if err := binary.Write(bw, binary.LittleEndian, moms); err != nil {
		return fmt.Errorf("write momenta: %w", err)
	}

	if err := writePayload(bw, codec, stack.Data); err != nil {
		return fmt.Errorf("write %s payload: %w", codec, err)
	}

	return bw.Flush()
}

func writePayload(w io.Writer, codec Codec, data []complex128) error {
	switch codec {
	case CodecNone:
		return binary.Write(w, binary.LittleEndian, data)
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := binary.Write(enc, binary.LittleEndian, data); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	case CodecLZ4:
		enc := lz4.NewWriter(w)
		if err := binary.Write(enc, binary.LittleEndian, data); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(codec))
	}
}

// Read decodes a stack written by Write.
func Read(r io.Reader) (*algophase.FieldStack, Codec, error) {
	br := bufio.NewReader(r)

	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	if h.Magic != magic {
		return nil, 0, ErrBadMagic
	}

	if h.Version != version {
		return nil, 0, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	codec := Codec(h.Codec)
	if codec > CodecLZ4 {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCodec, h.Codec)
	}

	shape := algophase.CheckerboardShape{
		T:     int(h.Shape[0]),
		Z:     int(h.Shape[1]),
		Y:     int(h.Shape[2]),
		XHalf: int(h.Shape[3]),
	}

	elems := uint64(h.Count) * 2
	for _, e := range h.Shape {
		if e == 0 {
			return nil, 0, fmt.Errorf("%w: zero extent in shape %v", ErrCorrupt, h.Shape)
		}
		elems *= uint64(e)
		if elems > maxElements {
			return nil, 0, fmt.Errorf("%w: payload of %d momenta on %v too large", ErrCorrupt, h.Count, shape)
		}
	}

	moms, err := readMomenta(br, int(h.Count))
	if err != nil {
		return nil, 0, fmt.Errorf("read momenta: %w", err)
	}

	data, err := readPayload(br, codec, int(elems))
	if err != nil {
		return nil, 0, fmt.Errorf("read %s payload: %w", codec, err)
	}

	return &algophase.FieldStack{Momenta: moms, Shape: shape, Data: data}, codec, nil
}

func readMomenta(r io.Reader, n int) ([]algophase.Momentum, error) {
	moms := make([]algophase.Momentum, 0, min(n, readBatch))
	buf := make([][3]int32, min(n, readBatch))

	for len(moms) < n {
		b := buf[:min(n-len(moms), len(buf))]
		if err := binary.Read(r, binary.LittleEndian, b); err != nil {
			return nil, err
		}
		for _, p := range b {
			moms = append(moms, algophase.Momentum{int(p[0]), int(p[1]), int(p[2])})
		}
	}

	return moms, nil
}

func readPayload(r io.Reader, codec Codec, n int) ([]complex128, error) {
	switch codec {
	case CodecNone:
		return readComplex(r, n)
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return readComplex(dec, n)
	case CodecLZ4:
		return readComplex(lz4.NewReader(r), n)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(codec))
	}
}

func readComplex(r io.Reader, n int) ([]complex128, error) {
	data := make([]complex128, 0, min(n, readBatch))
	buf := make([]complex128, min(n, readBatch))

	for len(data) < n {
		b := buf[:min(n-len(data), len(buf))]
		if err := binary.Read(r, binary.LittleEndian, b); err != nil {
			return nil, err
		}
		data = append(data, b...)
	}

	return data, nil
}
