package document

import (
	"fmt"

	"github.com/ssargent/yad/pkg/codec"
)

// Segmenter: splits a flat byte buffer into sentinel-delimited row or key
// chunks so each can be decoded on its own.
//
// The scan is structure-aware rather than a blind byte search. Payload bytes
// inside a chunk are unconstrained and can coincide with sentinel values (a
// uint8 of 0xF4, a UTF-8 lead byte of 0xF3), so the scanner steps over names
// and values using their declared lengths via codec.Next instead of matching
// raw bytes. The wire format itself is unchanged; only the reader is
// stricter than a naive scan.
//
// The scan is also strict: every byte between the outer boundaries must
// belong to a chunk, so corruption surfaces as an error instead of a silent
// discard.

// nextKey returns the size of the complete key chunk at the front of b.
func nextKey(b []byte) (int, error) {
	if len(b) == 0 || b[0] != KeyStart {
		return 0, ErrMalformedKey
	}

	pos := 1
	_, n, err := parseName(b[pos:], KeyName)
	if err != nil {
		return 0, fmt.Errorf("key name: %w", err)
	}
	pos += n

	n, err = codec.Next(b[pos:])
	if err != nil {
		return 0, fmt.Errorf("key value: %w", err)
	}
	pos += n

	if pos >= len(b) || b[pos] != KeyEnd {
		return 0, fmt.Errorf("missing key end sentinel: %w", ErrMalformedKey)
	}
	return pos + 1, nil
}

// nextRow returns the size of the complete row chunk at the front of b.
func nextRow(b []byte) (int, error) {
	if len(b) == 0 || b[0] != RowStart {
		return 0, ErrMalformedRow
	}

	pos := 1
	_, n, err := parseName(b[pos:], RowName)
	if err != nil {
		return 0, fmt.Errorf("row name: %w", err)
	}
	pos += n

	for {
		if pos >= len(b) {
			return 0, fmt.Errorf("missing row end sentinel: %w", ErrMalformedRow)
		}
		switch b[pos] {
		case RowEnd:
			return pos + 1, nil
		case KeyStart:
			n, err := nextKey(b[pos:])
			if err != nil {
				return 0, err
			}
			pos += n
		default:
			return 0, fmt.Errorf("unexpected byte 0x%02X in row: %w", b[pos], ErrMalformedRow)
		}
	}
}

// segmentKeys splits buf into complete [KeyStart ... KeyEnd] chunks.
func segmentKeys(buf []byte) ([][]byte, error) {
	var chunks [][]byte
	for pos := 0; pos < len(buf); {
		if buf[pos] != KeyStart {
			return nil, fmt.Errorf("unexpected byte 0x%02X between keys: %w", buf[pos], ErrMalformedKey)
		}
		n, err := nextKey(buf[pos:])
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, buf[pos:pos+n])
		pos += n
	}
	return chunks, nil
}

// segmentRows splits buf into complete [RowStart ... RowEnd] chunks.
func segmentRows(buf []byte) ([][]byte, error) {
	var chunks [][]byte
	for pos := 0; pos < len(buf); {
		if buf[pos] != RowStart {
			return nil, fmt.Errorf("unexpected byte 0x%02X between rows: %w", buf[pos], ErrMalformedRow)
		}
		n, err := nextRow(buf[pos:])
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, buf[pos:pos+n])
		pos += n
	}
	return chunks, nil
}
