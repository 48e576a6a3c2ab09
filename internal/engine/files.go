package engine

import (
	"fmt"
	"os"

	"github.com/kbukum/httpfacade/model"
)

// OpenFile opens a body or part file and returns it with its size.
// Failures are body errors.
func OpenFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, model.NewBodyError(err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, model.NewBodyError(err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, 0, model.NewBodyError(fmt.Errorf("%s is a directory", path))
	}
	return f, info.Size(), nil
}
