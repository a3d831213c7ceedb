package tagtree

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// Load reads a binary NBT document (gzip-compressed or raw, big-endian Java
// encoding) and returns its root compound.
func Load(path string) (Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Node{}, fmt.Errorf("tagtree: read %s: %w", path, err)
	}
	return Decode(raw, path)
}

// Decode parses raw NBT bytes. The name is used for error context only.
func Decode(raw []byte, name string) (Node, error) {
	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return Node{}, fmt.Errorf("tagtree: gunzip %s: %w", name, err)
		}
		raw, err = io.ReadAll(zr)
		zr.Close()
		if err != nil {
			return Node{}, fmt.Errorf("tagtree: gunzip %s: %w", name, err)
		}
	}

	var root map[string]any
	dec := nbt.NewDecoderWithEncoding(bytes.NewReader(raw), nbt.BigEndian)
	if err := dec.Decode(&root); err != nil {
		return Node{}, fmt.Errorf("tagtree: decode %s: %w", name, err)
	}
	return Wrap(root), nil
}
