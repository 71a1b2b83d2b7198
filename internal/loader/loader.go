// Package loader decodes conversation exports into messages.
package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// Stdin is the path that makes LoadFile read standard input.
const Stdin = "-"

// ErrNotArray is returned when the export's top level is not a JSON array.
var ErrNotArray = errors.New("export is not a JSON array of messages")

// Load decodes a JSON array of messages from r, keeping the document order.
// Missing or null fields decode to their zero value.
func Load(ctx context.Context, r io.Reader) ([]models.Message, error) {
	dec := json.NewDecoder(bufio.NewReaderSize(r, 64*1024))

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode export: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, ErrNotArray
	}

	var msgs []models.Message
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var m models.Message
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode message %d: %w", len(msgs), err)
		}
		msgs = append(msgs, m)
	}

	// Closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	return msgs, nil
}

// LoadFile reads the export at path, or standard input if path is "-".
func LoadFile(ctx context.Context, path string) ([]models.Message, error) {
	if path == Stdin {
		msgs, err := Load(ctx, os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return msgs, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	msgs, err := Load(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return msgs, nil
}
