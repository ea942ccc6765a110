package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockFetcher simulates the engine.VCardFetcher interface using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, src engine.ImportSource) (io.ReadCloser, error) {
	args := m.Called(ctx, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

var testClock = MockClock{CurrentTime: time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)}

func TestRunOnce_Birth(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := runOnce(context.Background(), &config.Settings{Birth: "2000-01-15"}, testClock, nil, &stdout, &stderr)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "24 Years\n24 years, 1 months, 24 days\nTotal: 289 months\nTotal: 8,821 days\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunOnce_Rejections(t *testing.T) {
	tests := []struct {
		birth string
		want  string
	}{
		{"   ", config.MsgSelectBirthDate},
		{"15/01/2000", config.MsgSelectBirthDate},
		{"2024-03-11", config.MsgFutureBirthDate},
	}

	for _, tt := range tests {
		t.Run(tt.birth, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := runOnce(context.Background(), &config.Settings{Birth: tt.birth}, testClock, nil, &stdout, &stderr)

			assert.Equal(t, config.ExitCodeError, code)
			assert.Empty(t, stdout.String())
			assert.Equal(t, tt.want+"\n", stderr.String())
		})
	}
}

func TestRunOnce_LocalVCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.vcf")
	vcard := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane Doe\r\nBDAY:19900520\r\nEND:VCARD\r\n"
	require.NoError(t, os.WriteFile(path, []byte(vcard), 0o600))

	var stdout, stderr bytes.Buffer
	code := runOnce(context.Background(), &config.Settings{VCard: path}, testClock, nil, &stdout, &stderr)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "33 Years\n"))
}

func TestRunOnce_RemoteVCard(t *testing.T) {
	fetcher := new(MockFetcher)
	vcard := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane Doe\r\nBDAY:2000-01-15\r\nEND:VCARD\r\n"
	src := engine.ImportSource{Location: "https://dav.example.com/me.vcf", User: "jane", Pass: "secret"}
	fetcher.On("Fetch", mock.Anything, src).Return(io.NopCloser(strings.NewReader(vcard)), nil)

	s := &config.Settings{VCard: src.Location, VCardUser: "jane", VCardPass: "secret"}
	var stdout, stderr bytes.Buffer
	code := runOnce(context.Background(), s, testClock, fetcher, &stdout, &stderr)

	fetcher.AssertExpectations(t)
	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Contains(t, stdout.String(), "Total: 8,821 days")
}

func TestRunOnce_VCardFailure(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	var stdout, stderr bytes.Buffer
	code := runOnce(context.Background(), &config.Settings{VCard: "http://dav.local/me.vcf"}, testClock, fetcher, &stdout, &stderr)

	assert.Equal(t, config.ExitCodeError, code)
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, stderr.String())
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &config.Settings{Port: "0", BindAddr: config.LocalhostBindAddr}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, s) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_BadPort(t *testing.T) {
	err := serve(context.Background(), &config.Settings{Port: "", BindAddr: config.LocalhostBindAddr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}
