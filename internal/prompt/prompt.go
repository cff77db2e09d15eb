// Package prompt implements the filter.Chooser collaborators: an interactive
// terminal multi-select and a preset answering from configuration.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"termcal/internal/filter"
)

const disclaimer = "(numbers separated by spaces or commas, ENTER keeps the marked ones, '-' for none)"

// Terminal asks questions on a line-oriented terminal.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal reads answers from in and writes prompts to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Choose prints the items and reads 1-based indices until the answer parses.
func (t *Terminal) Choose(q filter.Question) ([]int, error) {
	for {
		fmt.Fprintf(t.out, "%s %s\n", q.Prompt, disclaimer)
		for i, item := range q.Items {
			mark := " "
			if i < len(q.Defaults) && q.Defaults[i] {
				mark = "x"
			}
			fmt.Fprintf(t.out, "  [%s] %2d. %s\n", mark, i+1, item)
		}
		fmt.Fprint(t.out, "> ")

		line, err := t.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return defaults(q), nil
			}
			return nil, err
		}
		idx, perr := ParseAnswer(line, len(q.Items))
		if perr != nil {
			fmt.Fprintf(t.out, "%v\n", perr)
			continue
		}
		if idx == nil {
			return defaults(q), nil
		}
		return idx, nil
	}
}

// ParseAnswer turns "1, 3 4" into 0-based indices within [0, n). An empty
// answer returns nil (keep defaults); "-" returns an empty, non-nil slice.
func ParseAnswer(line string, n int) ([]int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	if line == "-" {
		return []int{}, nil
	}
	seen := make(map[int]bool)
	out := []int{}
	for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", f)
		}
		if v < 1 || v > n {
			return nil, fmt.Errorf("%d is not between 1 and %d", v, n)
		}
		if !seen[v-1] {
			seen[v-1] = true
			out = append(out, v-1)
		}
	}
	return out, nil
}

func defaults(q filter.Question) []int {
	out := []int{}
	for i, d := range q.Defaults {
		if d && i < len(q.Items) {
			out = append(out, i)
		}
	}
	return out
}

// Preset answers from fixed label lists per stage. Stages without a list
// keep their defaults; listed labels not offered are ignored.
type Preset map[filter.Stage][]string

// Choose implements filter.Chooser.
func (p Preset) Choose(q filter.Question) ([]int, error) {
	want, ok := p[q.Stage]
	if !ok || want == nil {
		return defaults(q), nil
	}
	set := make(map[string]struct{}, len(want))
	for _, w := range want {
		set[w] = struct{}{}
	}
	out := []int{}
	for i, item := range q.Items {
		if _, ok := set[item]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}
