package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  alice  \nrest\n")), "Enter username", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Enter username\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("bob")), "p", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "bob", got)
}

func TestGetSimpleText_EmptyEOF(t *testing.T) {
	_, err := GetSimpleText(bufio.NewReader(strings.NewReader("")), "p", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origRead, origIs := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origIs })

	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
}

func TestGetSecret_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cr3t"), nil)

	var out bytes.Buffer
	got, err := GetPassword(bufio.NewReader(strings.NewReader("ignored\n")), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cr3t"), got)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetSecret_TerminalError(t *testing.T) {
	boom := errors.New("tty gone")
	stubTerminal(t, true, nil, boom)

	_, err := GetSecret(bufio.NewReader(strings.NewReader("")), "Key", io.Discard)
	require.ErrorIs(t, err, boom)
}

func TestGetSecret_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	got, err := GetSecret(bufio.NewReader(strings.NewReader("sk-123\n")), "Key", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []byte("sk-123"), got)
}

func TestGetMultiline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("line one\n  line two\n\nafter\n"))
	got, err := GetMultiline(r, "Content", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "line one\n  line two", got)

	next, _ := r.ReadString('\n')
	assert.Equal(t, "after\n", next, "reading stops at the empty line")
}

func TestGetMultiline_EOFWithoutBlankLine(t *testing.T) {
	got, err := GetMultiline(bufio.NewReader(strings.NewReader("only")), "Content", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestGetConfirmation(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "sure\n": false} {
		got, err := GetConfirmation(bufio.NewReader(strings.NewReader(in)), "Delete?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
