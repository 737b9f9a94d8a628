package restocklog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Log is the file-backed restock request queue read by the manager. The
// contract is append-only: a request line is added only if no line for
// that ingredient is already present, and the full contents can be read
// back on demand.
type Log struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Log { return &Log{path: path} }

// Request appends a restock line for the ingredient unless one exists.
func (l *Log) Request(ingredient string, quantity, threshold int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	present, err := l.contains(ingredient)
	if err != nil {
		return fmt.Errorf("scan request log: %w", err)
	}
	if present {
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open request log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s is less than the threshold of %d: Requesting %d\n",
		ingredient, threshold, 20)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append request: %w", err)
	}
	return nil
}

// Contains reports whether a request line for the ingredient exists.
func (l *Log) Contains(ingredient string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.contains(ingredient)
}

func (l *Log) contains(ingredient string) (bool, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), ingredient) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// ReadAll returns the full request log contents.
func (l *Log) ReadAll() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read request log: %w", err)
	}
	return string(b), nil
}
