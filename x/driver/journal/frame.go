// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package journal

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ewall-cauc/mongo-cxx-driver/x/driver"
)

// A frame is the total length including the header, the uncompressed
// payload size, the compressor id, and the compressed payload.
const frameHeaderSize = 4 + 4 + 1

// maxFrameSize bounds a single frame so a corrupt length prefix cannot
// trigger an arbitrary allocation while reading.
const maxFrameSize = 16 * 1024 * 1024

func writeFrame(w io.Writer, payload []byte, opts driver.CompressionOpts) error {
	compressed, err := driver.CompressPayload(payload, opts)
	if err != nil {
		return err
	}

	frame := make([]byte, frameHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(frame[0:4], uint32(len(frame)))
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(payload)))
	frame[8] = byte(opts.Compressor)
	copy(frame[frameHeaderSize:], compressed)

	_, err = w.Write(frame)
	return err
}

// readFrame returns the next frame's decompressed payload. io.EOF is only
// returned at a frame boundary; a frame cut short mid-way reads as
// io.ErrUnexpectedEOF.
func readFrame(r io.Reader) ([]byte, error) {
	var head [frameHeaderSize]byte
	if _, err := io.ReadFull(r, head[:4]); err != nil {
		return nil, err
	}

	frameLen := binary.LittleEndian.Uint32(head[:4])
	if frameLen < frameHeaderSize || frameLen > maxFrameSize {
		return nil, fmt.Errorf("journal: invalid frame length %d", frameLen)
	}
	if _, err := io.ReadFull(r, head[4:]); err != nil {
		return nil, unexpectedEOF(err)
	}

	uncompressedSize := binary.LittleEndian.Uint32(head[4:8])
	compressed := make([]byte, frameLen-frameHeaderSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, unexpectedEOF(err)
	}

	return driver.DecompressPayload(compressed, driver.CompressionOpts{
		Compressor:       driver.CompressorID(head[8]),
		UncompressedSize: int32(uncompressedSize),
	})
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
