package cmd

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_PipedInput(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("one\r\ntwo"), &out)

	got, err := p.Password("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	got, err = p.Password("Again: ")
	require.NoError(t, err)
	assert.Equal(t, "two", got, "last line without newline")

	_, err = p.Password("More: ")
	assert.Error(t, err)
	assert.Equal(t, "Password: Again: More: ", out.String())
}

func TestPrompter_NewPassword(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("pw\npw\n"), &out)

	got, err := p.NewPassword("New password: ")
	require.NoError(t, err)
	assert.Equal(t, "pw", got)
	assert.Equal(t, "New password: Repeat new password: ", out.String())

	p = newPrompter(strings.NewReader("pw\nPW\n"), &out)
	_, err = p.NewPassword("Password: ")
	assert.ErrorIs(t, err, errPasswordMismatch)
}

func TestPrompter_Terminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }

	var out bytes.Buffer
	got, err := newPrompter(r, &out).Password("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hidden", got)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("tty gone") }
	_, err = newPrompter(r, &out).Password("Password: ")
	assert.EqualError(t, err, "tty gone")
}
