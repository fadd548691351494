package wire

import "io"

// WriteOptional writes 0x00 for a nil value, or 0x01 followed by the encoded
// value via writeFn.
func WriteOptional[T any](w io.Writer, v *T, writeFn func(io.Writer, T) error) error {
	if v == nil {
		_, err := w.Write([]byte{0x00})
		return err
	}
	if _, err := w.Write([]byte{0x01}); err != nil {
		return err
	}
	return writeFn(w, *v)
}

// ReadOptional reads the presence byte and, if set, decodes a value via
// readFn.
func ReadOptional[T any](r ByteReader, readFn func(ByteReader) (T, error)) (*T, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, nil
	}

	v, err := readFn(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
