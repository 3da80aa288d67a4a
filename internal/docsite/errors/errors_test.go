package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorFormatting(t *testing.T) {
	t.Parallel()

	err := NewParseError("site.yaml", 12, io.ErrUnexpectedEOF)
	require.EqualError(t, err, "parse error: site.yaml:12: unexpected EOF")
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	noLine := NewParseError("site.yaml", 0, io.ErrUnexpectedEOF)
	require.EqualError(t, noLine, "parse error: site.yaml: unexpected EOF")
}

func TestConfigErrorAs(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("boom")
	err := error(NewConfigError("title", "is required", cause))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "title", cfgErr.Field)
	require.ErrorIs(t, err, cause)
	require.EqualError(t, NewConfigError("", "bad input", nil), "config error: bad input")
}

func TestUnresolvedReferenceError(t *testing.T) {
	t.Parallel()

	err := NewUnresolvedReferenceError(RefSidebar, "apiSidebar", "themeConfig.navbar.items[1]", "throw")
	require.True(t, err.Fatal())
	require.Equal(t, `unresolved sidebar reference "apiSidebar" in themeConfig.navbar.items[1]`, err.Error())

	warn := NewUnresolvedReferenceError(RefDoc, "intro", "", "warn")
	require.False(t, warn.Fatal())
	require.Equal(t, `unresolved doc reference "intro"`, warn.Error())

	var nilErr *UnresolvedReferenceError
	require.False(t, nilErr.Fatal())
}
