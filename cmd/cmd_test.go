package cmd

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/dlyt/authstore"
	"github.com/s0up4200/dlyt/dlyt"
	"github.com/s0up4200/dlyt/notify"
)

func setupSession(t *testing.T) {
	t.Helper()
	store = authstore.New(authstore.NewMemoryStorage(), zerolog.Nop())
	sink = notify.NewSink()
	t.Cleanup(func() { sink.Dismiss() })
}

func TestSaveSession(t *testing.T) {
	tests := []struct {
		name         string
		reply        dlyt.LoginReply
		fallback     string
		wantErr      bool
		wantIdentity string
		wantMessage  string
	}{
		{
			name:         "identity from reply",
			reply:        dlyt.LoginReply{Token: "tok", User: dlyt.LoginUser{Identity: "u1", DisplayName: "Ann"}},
			fallback:     "13800000000",
			wantIdentity: "u1",
			wantMessage:  "Signed in as Ann",
		},
		{
			name:         "fallback identity",
			reply:        dlyt.LoginReply{Token: "tok"},
			fallback:     "13800000000",
			wantIdentity: "13800000000",
			wantMessage:  "Signed in as 13800000000",
		},
		{
			name:     "missing token",
			reply:    dlyt.LoginReply{User: dlyt.LoginUser{Identity: "u1"}},
			fallback: "u1",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupSession(t)

			err := saveSession(&tt.reply, tt.fallback)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, store.Token())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "tok", store.Token())
			assert.Equal(t, tt.wantIdentity, store.Identity())

			current := sink.Current()
			assert.Equal(t, tt.wantMessage, current.Message)
			assert.Equal(t, notify.KindSuccess, current.Kind)
		})
	}
}

func TestWriteAudio(t *testing.T) {
	audio := []byte{0x49, 0x44, 0x33, 0x04}
	encoded := base64.StdEncoding.EncodeToString(audio)

	t.Run("plain base64", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.mp3")
		require.NoError(t, writeAudio(path, encoded))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, audio, got)
	})

	t.Run("data url", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.mp3")
		require.NoError(t, writeAudio(path, "data:audio/mpeg;base64,"+encoded))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, audio, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Error(t, writeAudio(filepath.Join(t.TempDir(), "out.mp3"), ""))
	})

	t.Run("invalid", func(t *testing.T) {
		assert.Error(t, writeAudio(filepath.Join(t.TempDir(), "out.mp3"), "not base64!"))
	})
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() {
		stdout = os.Stdout
		jsonOutput = false
	})

	value := map[string]string{"url": "https://example.com/a?b=1&c=2"}

	jsonOutput = true
	require.NoError(t, printResult(value, func(w io.Writer) { t.Fatal("human output used in json mode") }))
	assert.Equal(t, "{\n  \"url\": \"https://example.com/a?b=1&c=2\"\n}\n", buf.String())

	buf.Reset()
	jsonOutput = false
	require.NoError(t, printResult(value, func(w io.Writer) { io.WriteString(w, "human\n") }))
	assert.Equal(t, "human\n", buf.String())
}

func TestPrintUsageTotals(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf, []dlyt.UsageDay{
		{Date: "2026-03-01", ASRChars: 100, TTSChars: 20, Requests: 3},
		{Date: "2026-03-02", ASRChars: 50, TTSChars: 5, Requests: 1},
	})

	assert.Contains(t, buf.String(), "2026-03-01")
	assert.Regexp(t, `TOTAL\s+150\s+25\s+4`, buf.String())

	buf.Reset()
	printUsage(&buf, nil)
	assert.Equal(t, "No usage recorded.\n", buf.String())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-03-01 08:30", formatDate("2026-03-01T08:30:00Z"))
	assert.Equal(t, "2026-03-01 00:00", formatDate("2026-03-01"))
	assert.Equal(t, "yesterday", formatDate("yesterday"))
}
