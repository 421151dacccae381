// Package vocabulary loads the ordered label list a classifier predicts over.
package vocabulary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/user/harview/pkg/ports"
)

var (
	// ErrEmpty is returned when a vocabulary file holds no labels.
	ErrEmpty = errors.New("vocabulary: no labels")

	// ErrIndex is returned for an index outside the vocabulary.
	ErrIndex = errors.New("vocabulary: index out of range")
)

// Vocabulary maps network output positions to label strings.
type Vocabulary struct {
	labels []string
}

// New creates a vocabulary from labels in output order.
func New(labels []string) (*Vocabulary, error) {
	if len(labels) == 0 {
		return nil, ErrEmpty
	}
	cp := make([]string, len(labels))
	copy(cp, labels)
	return &Vocabulary{labels: cp}, nil
}

// Load reads a vocabulary file with one label per line.
// Surrounding whitespace is trimmed and blank lines are skipped.
func Load(fs ports.FileSystem, path string) (*Vocabulary, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	labels, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	return New(labels)
}

// Parse splits vocabulary file contents into labels.
func Parse(data []byte) ([]string, error) {
	var labels []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label != "" {
			labels = append(labels, label)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, ErrEmpty
	}
	return labels, nil
}

// Len returns the number of labels.
func (v *Vocabulary) Len() int {
	return len(v.labels)
}

// Label returns the label at output position i.
func (v *Vocabulary) Label(i int) (string, error) {
	if i < 0 || i >= len(v.labels) {
		return "", fmt.Errorf("%w: %d of %d", ErrIndex, i, len(v.labels))
	}
	return v.labels[i], nil
}

// Labels returns a copy of all labels in output order.
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}
