package texpect

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenReader_lines(t *testing.T) {
	gr, err := NewGoldenString("t.texpect", "first\nsecond <\\d+>\nlast")
	require.NoError(t, err)
	defer gr.Close()
	assert.Equal(t, "t.texpect", gr.Name())

	p, err := gr.NextLine()
	require.NoError(t, err)
	assert.Equal(t, 0, p.Line())
	assert.Equal(t, "first\n", p.Text())

	p, err = gr.NextLine()
	require.NoError(t, err)
	assert.Equal(t, 1, p.Line())
	assert.Equal(t, "second <\\d+>\n", p.Text())

	// the final line has no terminator and keeps none
	p, err = gr.NextLine()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, "last", p.Text())

	_, err = gr.NextLine()
	assert.ErrorIs(t, err, io.EOF)
	_, err = gr.NextLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestGoldenReader_readAfterClose(t *testing.T) {
	gr, err := NewGoldenString("t.texpect", "line\n")
	require.NoError(t, err)
	require.NoError(t, gr.Close())
	_, err = gr.NextLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestGoldenReader_empty(t *testing.T) {
	gr, err := NewGoldenString("empty", "")
	require.NoError(t, err)
	_, err = gr.NextLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestGoldenReader_compileErrorTagged(t *testing.T) {
	gr, err := NewGoldenString("bad.texpect", "ok\nalso ok\nbad <>\n")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = gr.NextLine()
		require.NoError(t, err)
	}
	_, err = gr.NextLine()
	var ge *GoldenError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "bad.texpect", ge.Name)
	assert.Equal(t, 2, ge.Line)
	assert.ErrorIs(t, err, ErrEmptyFragment)
	assert.Contains(t, ge.Error(), "bad.texpect:2")
}

func TestGoldenReader_nilReader(t *testing.T) {
	_, err := NewGoldenReader("x", nil)
	assert.Error(t, err)
}
