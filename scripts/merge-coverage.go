//go:build ignore

// merge-coverage combines Go coverage profiles produced by separate CI jobs
// into a single profile on stdout.
//
// Usage: go run scripts/merge-coverage.go unit.out integration.out > coverage.out
//
// Blocks reported by more than one profile are merged: with mode "set" a block
// counts as covered if any profile covered it, otherwise counts are summed.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

type profile struct {
	mode   string
	counts map[string]int
	order  []string
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s file1.out file2.out [...]\n", os.Args[0])
		os.Exit(1)
	}

	merged, err := mergeFiles(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer func() { _ = w.Flush() }()
	merged.write(w)
}

func mergeFiles(paths []string) (*profile, error) {
	merged := &profile{counts: make(map[string]int)}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		err = merged.read(f, path)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
	}
	if merged.mode == "" {
		return nil, fmt.Errorf("no mode line found in %s", strings.Join(paths, ", "))
	}
	return merged, nil
}

func (p *profile) read(r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if mode, ok := strings.CutPrefix(text, "mode:"); ok {
			mode = strings.TrimSpace(mode)
			if p.mode != "" && p.mode != mode {
				return fmt.Errorf("%s: mode %q does not match %q", name, mode, p.mode)
			}
			p.mode = mode
			continue
		}

		// block format: file:start.col,end.col statements count
		idx := strings.LastIndexByte(text, ' ')
		if idx < 0 {
			return fmt.Errorf("%s:%d: malformed line %q", name, line, text)
		}
		block, countText := text[:idx], text[idx+1:]
		count, err := strconv.Atoi(countText)
		if err != nil {
			return fmt.Errorf("%s:%d: bad count %q", name, line, countText)
		}

		prev, seen := p.counts[block]
		if !seen {
			p.order = append(p.order, block)
		}
		if p.mode == "set" {
			if count > 0 || prev > 0 {
				p.counts[block] = 1
			} else {
				p.counts[block] = 0
			}
		} else {
			p.counts[block] = prev + count
		}
	}
	return scanner.Err()
}

func (p *profile) write(w io.Writer) {
	fmt.Fprintf(w, "mode: %s\n", p.mode)
	blocks := append([]string(nil), p.order...)
	sort.Strings(blocks)
	for _, block := range blocks {
		fmt.Fprintf(w, "%s %d\n", block, p.counts[block])
	}
}
