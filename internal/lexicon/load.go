package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a plain word list, one word per line. Lines are trimmed and
// uppercased; anything containing characters outside A-Z, or shorter than
// three letters, is skipped.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if len(w) >= 3 && isAlpha(w) {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return out, nil
}

// isAlpha reports whether s is all uppercase ASCII letters
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
