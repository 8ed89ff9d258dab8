// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/wirejson/lib/schema"
	"github.com/bureau-foundation/wirejson/lib/schemafile"
)

// Bundle layout:
//
//	offset  size  content
//	0       4     magic "WJB1"
//	4       1     compression tag
//	5       4     uncompressed payload size, big-endian
//	9       32    registry fingerprint
//	41      —     payload: schema document as deterministic CBOR,
//	              compressed per the tag
const (
	magic      = "WJB1"
	headerSize = 4 + 1 + 4 + schema.FingerprintSize
)

// maxPayloadSize bounds the uncompressed document size a reader will
// allocate. Schema documents are small; anything near this limit is
// corrupt or hostile input.
const maxPayloadSize = 64 << 20

// cborEncMode encodes documents with Core Deterministic Encoding so
// that the same document always produces identical bundle bytes.
var cborEncMode cbor.EncMode

// cborDecMode accepts standard CBOR and rejects unknown document
// fields: a bundle written by a newer format revision must not decode
// silently into a truncated document.
var cborDecMode cbor.DecMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bundle: CBOR encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("bundle: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serializes a schema document into bundle bytes. The document
// is compiled first: malformed documents cannot be bundled, and the
// compiled registry's fingerprint is stored in the header. When the
// payload does not shrink under the requested compression, the bundle
// falls back to storing it uncompressed.
func Encode(document *schemafile.Document, tag CompressionTag) ([]byte, error) {
	registry, err := schemafile.Build(document)
	if err != nil {
		return nil, fmt.Errorf("compiling document: %w", err)
	}
	fingerprint, err := schema.RegistryFingerprint(registry)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting document: %w", err)
	}

	payload, err := cborEncMode.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if len(payload) > maxPayloadSize {
		return nil, fmt.Errorf("document payload %d bytes exceeds limit %d", len(payload), maxPayloadSize)
	}

	compressed, appliedTag, err := compress(payload, tag)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(compressed))
	copy(out[0:4], magic)
	out[4] = byte(appliedTag)
	binary.BigEndian.PutUint32(out[5:9], uint32(len(payload)))
	copy(out[9:9+schema.FingerprintSize], fingerprint[:])
	return append(out, compressed...), nil
}

// Decode parses bundle bytes back into the document and its compiled
// registry. The header fingerprint is checked against a fingerprint
// recomputed from the rebuilt registry; a mismatch means the payload
// was altered after the bundle was written.
func Decode(data []byte) (*schemafile.Document, *schema.Registry, error) {
	if len(data) < headerSize {
		return nil, nil, fmt.Errorf("bundle truncated: %d bytes, header needs %d", len(data), headerSize)
	}
	if string(data[0:4]) != magic {
		return nil, nil, fmt.Errorf("bad magic %q, want %q", data[0:4], magic)
	}
	tag := CompressionTag(data[4])
	payloadSize := binary.BigEndian.Uint32(data[5:9])
	if payloadSize > maxPayloadSize {
		return nil, nil, fmt.Errorf("payload size %d exceeds limit %d", payloadSize, maxPayloadSize)
	}
	var stored schema.Fingerprint
	copy(stored[:], data[9:9+schema.FingerprintSize])

	payload, err := decompress(data[headerSize:], tag, int(payloadSize))
	if err != nil {
		return nil, nil, err
	}

	var document schemafile.Document
	if err := cborDecMode.Unmarshal(payload, &document); err != nil {
		return nil, nil, fmt.Errorf("decoding document: %w", err)
	}

	registry, err := schemafile.Build(&document)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling document: %w", err)
	}
	fingerprint, err := schema.RegistryFingerprint(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("fingerprinting document: %w", err)
	}
	if fingerprint != stored {
		return nil, nil, fmt.Errorf("fingerprint mismatch: header %s, recomputed %s", stored, fingerprint)
	}

	return &document, registry, nil
}

// Write encodes a document and writes the bundle to w.
func Write(w io.Writer, document *schemafile.Document, tag CompressionTag) error {
	data, err := Encode(document, tag)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	return nil
}

// Read consumes r to EOF and decodes the bundle.
func Read(r io.Reader) (*schemafile.Document, *schema.Registry, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayloadSize+headerSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("reading bundle: %w", err)
	}
	return Decode(data)
}

// Info summarizes a bundle header without rebuilding the registry.
type Info struct {
	Compression      CompressionTag
	UncompressedSize int
	CompressedSize   int
	Fingerprint      schema.Fingerprint
}

// ReadInfo parses only the bundle header. It does not verify the
// fingerprint; use Decode for that.
func ReadInfo(data []byte) (Info, error) {
	if len(data) < headerSize {
		return Info{}, fmt.Errorf("bundle truncated: %d bytes, header needs %d", len(data), headerSize)
	}
	if string(data[0:4]) != magic {
		return Info{}, fmt.Errorf("bad magic %q, want %q", data[0:4], magic)
	}
	info := Info{
		Compression:      CompressionTag(data[4]),
		UncompressedSize: int(binary.BigEndian.Uint32(data[5:9])),
		CompressedSize:   len(data) - headerSize,
	}
	copy(info.Fingerprint[:], data[9:9+schema.FingerprintSize])
	return info, nil
}
