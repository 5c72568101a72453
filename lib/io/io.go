package iolib

import "io"

func WriteFull(w io.Writer, buf []byte) (uint, error) {
	total := uint(0)
	for total < uint(len(buf)) {
		n, err := w.Write(buf[total:])
		total += uint(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteStrings writes every string in order and stops at the first failure.
func WriteStrings(w io.Writer, ss ...string) (uint, error) {
	total := uint(0)
	for _, s := range ss {
		n, err := WriteFull(w, []byte(s))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
