package vocabulary

import (
	"errors"
	iofs "io/fs"
	"testing"

	"github.com/user/harview/pkg/mocks"
)

func TestLoad(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("model/labels.txt", []byte("abseiling\r\nair drumming\n\n  answering questions  \n"))

	v, err := Load(fs, "model/labels.txt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v.Len() != 3 {
		t.Fatalf("expected 3 labels, got %d", v.Len())
	}

	want := []string{"abseiling", "air drumming", "answering questions"}
	for i, w := range want {
		got, err := v.Label(i)
		if err != nil {
			t.Fatalf("Label(%d) failed: %v", i, err)
		}
		if got != w {
			t.Errorf("Label(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	fs := mocks.NewFileSystem()

	if _, err := Load(fs, "missing.txt"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("empty.txt", []byte("\n  \n"))

	_, err := Load(fs, "empty.txt")
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestLabel_OutOfRange(t *testing.T) {
	v, err := New([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}

	for _, i := range []int{-1, 2, 400} {
		if _, err := v.Label(i); !errors.Is(err, ErrIndex) {
			t.Errorf("Label(%d): expected ErrIndex, got %v", i, err)
		}
	}
}

func TestLabels_ReturnsCopy(t *testing.T) {
	v, _ := New([]string{"a", "b"})
	labels := v.Labels()
	labels[0] = "changed"

	if got, _ := v.Label(0); got != "a" {
		t.Errorf("vocabulary mutated through Labels(): %q", got)
	}
}
