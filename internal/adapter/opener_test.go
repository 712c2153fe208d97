package adapter

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

func newRecordingOpener(command string, args []string, fail error) (*Opener, *[]recordedCall) {
	calls := &[]recordedCall{}
	o := NewOpener(command, args, nil)
	o.start = func(name string, args ...string) error {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return fail
	}
	return o, calls
}

func TestOpenConfiguredCommand(t *testing.T) {
	o, calls := newRecordingOpener("firefox", []string{"--new-tab"}, nil)

	require.NoError(t, o.Open("https://www.imdb.com/title/tt0372784/"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "firefox", (*calls)[0].name)
	assert.Equal(t, []string{"--new-tab", "https://www.imdb.com/title/tt0372784/"}, (*calls)[0].args)
}

func TestOpenPlatformDefault(t *testing.T) {
	o, calls := newRecordingOpener("", nil, nil)

	require.NoError(t, o.Open("https://img.example/poster.jpg"))
	require.Len(t, *calls, 1)

	want := map[string]string{"darwin": "open", "windows": "rundll32"}[runtime.GOOS]
	if want == "" {
		want = "xdg-open"
	}
	assert.Equal(t, want, (*calls)[0].name)
}

func TestOpenRejectsNonWebURL(t *testing.T) {
	o, calls := newRecordingOpener("", nil, nil)

	assert.Error(t, o.Open("file:///etc/passwd"))
	assert.Error(t, o.Open("N/A"))
	assert.Empty(t, *calls)
}

func TestOpenReportsLaunchFailure(t *testing.T) {
	o, _ := newRecordingOpener("nope", nil, errors.New("not found"))
	assert.Error(t, o.Open("https://example.com"))
}
