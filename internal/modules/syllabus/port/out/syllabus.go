package out

import (
	"context"
	"io"
)

// TableReader decodes one file format into raw records, header first.
type TableReader interface {
	Format() string
	Extensions() []string
	Read(ctx context.Context, r io.Reader) ([][]string, error)
}
