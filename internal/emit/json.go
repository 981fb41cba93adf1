// Package emit renders aggregation results as the machine-readable JSON
// artifact. The rendering is deterministic: the same result always produces
// the same bytes.
package emit

import (
	"encoding/json"
	"fmt"
	"io"

	"tally/internal/core"
)

// Marshal serializes the result as a JSON object with two-space indentation,
// keys in sorted order, terminated by a single newline. Integral sums render
// without a fractional component; fractional ones keep full double precision.
func Marshal(res core.Result) ([]byte, error) {
	if res == nil {
		res = core.Result{}
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// Write serializes the result and writes it to w in a single call.
func Write(w io.Writer, res core.Result) error {
	data, err := Marshal(res)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
