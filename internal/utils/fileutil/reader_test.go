package fileutil

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisualReader(t *testing.T) {
	r := NewVisualReader(strings.NewReader(`{"tasks":[]}`))
	data, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(data)), r.Cur)
}
