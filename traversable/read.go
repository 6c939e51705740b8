// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package traversable

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used for text if no encoding is given.
const DefaultEncoding = "utf-8"

// DecodeErrors defines how invalid input is handled when decoding text.
type DecodeErrors string

const (
	// Strict fails with [ErrDecode] on invalid input.
	Strict DecodeErrors = "strict"
	// Replace substitutes invalid input with U+FFFD.
	Replace DecodeErrors = "replace"
	// Ignore drops invalid input.
	Ignore DecodeErrors = "ignore"
)

// String implements [fmt.Stringer].
func (d DecodeErrors) String() string {
	return string(d)
}

// Set implements [flag.Value].
func (d *DecodeErrors) Set(s string) error {
	switch mode := DecodeErrors(strings.ToLower(s)); mode {
	case Strict, Replace, Ignore:
		*d = mode
	default:
		return fmt.Errorf("%w: errors mode %q", ErrDecode, s)
	}

	return nil
}

type textOptions struct {
	encoding string
	errors   DecodeErrors
}

// TextOption configures text decoding.
type TextOption func(*textOptions)

// WithEncoding sets the encoding by its IANA name or alias, like "utf-8",
// "utf-16" or "latin1".
func WithEncoding(name string) TextOption {
	return func(o *textOptions) {
		if name != "" {
			o.encoding = name
		}
	}
}

// WithErrors sets the handling of invalid input.
func WithErrors(mode DecodeErrors) TextOption {
	return func(o *textOptions) {
		if mode != "" {
			o.errors = mode
		}
	}
}

// ReadBytes reads the whole content of the file node.
func ReadBytes(node Traversable) (_ []byte, err error) {
	file, err := node.Open()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", node, closeErr)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", node, err)
	}

	return data, nil
}

// ReadText reads and decodes the whole content of the file node.
func ReadText(node Traversable, opts ...TextOption) (string, error) {
	options := textOptions{
		encoding: DefaultEncoding,
		errors:   Strict,
	}

	for _, opt := range opts {
		opt(&options)
	}

	// Check the options first, so misuse is reported independent of the
	// node's state.
	enc, err := lookupEncoding(options.encoding)
	if err != nil {
		return "", err
	}

	data, err := ReadBytes(node)
	if err != nil {
		return "", err
	}

	text, err := decode(data, enc, options.errors)
	if err != nil {
		return "", fmt.Errorf("%s: %w", node, err)
	}

	return text, nil
}

// OpenText opens the file node for reading decoded text. The content is
// decoded completely before the reader is returned.
func OpenText(node Traversable, opts ...TextOption) (io.ReadCloser, error) {
	text, err := ReadText(node, opts...)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(strings.NewReader(text)), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}

	return enc, nil
}

func decode(data []byte, enc encoding.Encoding, mode DecodeErrors) (string, error) {
	if enc == unicode.UTF8 {
		switch {
		case utf8.Valid(data):
			return string(data), nil
		case mode == Ignore:
			return strings.ToValidUTF8(string(data), ""), nil
		case mode == Strict:
			return "", ErrDecode
		}
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	text := string(decoded)

	// Decoders substitute invalid input with the replacement character. It
	// may be part of valid input as well, which then encodes back to the
	// same bytes.
	if strings.ContainsRune(text, utf8.RuneError) && !roundTrips(data, decoded, enc) {
		switch mode {
		case Strict:
			return "", ErrDecode
		case Ignore:
			text = strings.ReplaceAll(text, string(utf8.RuneError), "")
		case Replace:
		}
	}

	return text, nil
}

func roundTrips(data, decoded []byte, enc encoding.Encoding) bool {
	encoded, err := enc.NewEncoder().Bytes(decoded)
	return err == nil && bytes.Equal(encoded, data)
}
