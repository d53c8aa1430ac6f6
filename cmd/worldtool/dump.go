package main

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/blockworld/internal/engine/mesh"
)

const dumpVersion = 1

// dumpHeader is the first line of a dump, readable with zstdcat | head -1.
type dumpHeader struct {
	Version            int   `json:"version"`
	Seed               int64 `json:"seed"`
	X                  int   `json:"x"`
	Z                  int   `json:"z"`
	OpaqueIndices      int32 `json:"opaque_indices"`
	TransparentIndices int32 `json:"transparent_indices"`
	Bytes              int   `json:"bytes"`
}

// writeDump stores the encoded mesh of one chunk as a zstd stream holding a
// JSON header line followed by the gob encoded buffers.
func writeDump(path string, hdr dumpHeader, buf mesh.Buffers) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	defer enc.Close()
	bw := bufio.NewWriterSize(enc, 256*1024)

	hdr.Version = dumpVersion
	hdr.OpaqueIndices = buf.OpaqueCount()
	hdr.TransparentIndices = buf.TransparentCount()
	hdr.Bytes = buf.Size()
	hb, err := json.Marshal(hdr)
	if err != nil {
		return err
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&buf); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

// readDump loads a dump written by writeDump.
func readDump(path string) (dumpHeader, mesh.Buffers, error) {
	var (
		hdr dumpHeader
		buf mesh.Buffers
	)
	f, err := os.Open(path)
	if err != nil {
		return hdr, buf, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return hdr, buf, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return hdr, buf, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &hdr); err != nil {
		return hdr, buf, fmt.Errorf("parse header: %w", err)
	}
	if hdr.Version != dumpVersion {
		return hdr, buf, fmt.Errorf("unsupported dump version %d", hdr.Version)
	}
	if err := gob.NewDecoder(br).Decode(&buf); err != nil {
		return hdr, buf, fmt.Errorf("gob decode: %w", err)
	}
	return hdr, buf, nil
}
