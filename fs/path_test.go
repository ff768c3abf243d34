package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input      string
		components []string
		dir        bool
	}{
		{"a", []string{"a"}, false},
		{"a/b.txt", []string{"a", "b.txt"}, false},
		{"a/b/", []string{"a", "b"}, true},
		{"a//b", []string{"a", "b"}, false},
		{"./a/./b", []string{"a", "b"}, false},
		{"a/b/..", []string{"a"}, false},
		{"a/b/../c", []string{"a", "c"}, false},
		{".", nil, true},
		{"a/.", []string{"a"}, true},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			p, err := Parse(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.components, p.Components)
			assert.Equal(t, c.dir, p.Dir)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		err   error
	}{
		{"", ErrInvalidPath},
		{"a\x00b", ErrInvalidPath},
		{"/etc/passwd", ErrAbsolutePath},
		{"..", ErrPathEscape},
		{"a/../..", ErrPathEscape},
		{"../a", ErrPathEscape},
		{strings.Repeat("x", NameMax+1), ErrNameTooLong},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			_, err := Parse(c.input)
			assert.ErrorIs(t, err, c.err)
		})
	}
}

func TestPathString(t *testing.T) {
	assert.Equal(t, ".", Path{}.String())
	assert.Equal(t, "a/b", Path{Components: []string{"a", "b"}}.String())
	assert.Equal(t, "a/b/", Path{Components: []string{"a", "b"}, Dir: true}.String())
}
