package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readSamples parses one sample per line. Blank lines and lines starting
// with '#' are skipped.
func readSamples(r io.Reader) ([]float64, error) {
	var out []float64

	sc := bufio.NewScanner(r)
	line := 0

	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		out = append(out, v)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func readSamplesFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := readSamples(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return x, nil
}

func writeSamples(w io.Writer, x []float64) error {
	bw := bufio.NewWriter(w)

	for _, v := range x {
		if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64) + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// writeSamplesFile writes x to a temporary file next to path and renames
// it into place, so a failed write leaves no partial file behind.
func writeSamplesFile(path string, x []float64) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = f.Chmod(0o644); err != nil {
		_ = f.Close()
		return err
	}

	if err = writeSamples(f, x); err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}
