package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Cameron-Kurotori/caseclosed/agent"
	"github.com/Cameron-Kurotori/caseclosed/sdk"
)

const maxSnapshotBytes = 4 << 20

// runStdio answers one move line for every JSON snapshot line on r. Blank
// lines, oversized lines and snapshots that cannot be decided are skipped.
func runStdio(r io.Reader, w io.Writer, a *agent.Agent, logger log.Logger) error {
	in := bufio.NewReaderSize(r, 64*1024)
	out := bufio.NewWriter(w)

	_ = level.Info(logger).Log("msg", "agent ready, waiting for game state")
	for {
		line, tooLong, readErr := readLine(in, maxSnapshotBytes)
		if tooLong {
			_ = level.Warn(logger).Log("msg", "snapshot too large, skipping", "limit_bytes", maxSnapshotBytes)
		} else if err := answer(bytes.TrimSpace(line), out, a, logger); err != nil {
			return err
		}

		if readErr == io.EOF {
			break
		} else if readErr != nil {
			return readErr
		}
	}

	_ = level.Info(logger).Log("msg", "agent terminated")
	return nil
}

// readLine reads through the next newline. Past limit bytes the rest of the
// line is drained and discarded.
func readLine(r *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > limit {
				line, tooLong = nil, true
			}
		}
		if err != bufio.ErrBufferFull {
			return line, tooLong, err
		}
	}
}

// answer writes the move for a single snapshot line. Only write failures are
// returned.
func answer(line []byte, out *bufio.Writer, a *agent.Agent, logger log.Logger) error {
	if len(line) == 0 {
		return nil
	}

	var snap sdk.Snapshot
	if err := json.Unmarshal(line, &snap); err != nil {
		_ = level.Warn(logger).Log("msg", "invalid json received, skipping", "err", err)
		return nil
	}

	response, err := move(a, snap)
	if err != nil {
		_ = level.Error(snap.Logger(logger)).Log("msg", "cannot move", "err", err)
		return nil
	}

	if _, err := fmt.Fprintln(out, response.Move); err != nil {
		return err
	}
	return out.Flush()
}
