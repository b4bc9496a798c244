package selfupdate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T, handler http.Handler) *Checker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChecker(WithBaseURLs(srv.URL, srv.URL))
}

func releaseHandler(tag string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name": %q, "html_url": "https://example.com/%s"}`, tag, tag)
	})
}

func TestCheckUpdateAvailable(t *testing.T) {
	c := newTestChecker(t, releaseHandler("v1.2.0"))

	result, err := c.Check(context.Background(), &CheckInput{Version: "1.1.0"})
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v1.2.0", result.LatestVersion)
}

func TestCheckAlreadyLatest(t *testing.T) {
	c := newTestChecker(t, releaseHandler("v1.2.0"))

	for _, version := range []string{"1.2.0", "v1.2.0", "1.3.0"} {
		result, err := c.Check(context.Background(), &CheckInput{Version: version})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable, "version %s", version)
	}
}

func TestCheckNonSemverCurrent(t *testing.T) {
	c := newTestChecker(t, releaseHandler("v1.2.0"))

	result, err := c.Check(context.Background(), &CheckInput{Version: "(devel)"})
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
}

func TestCheckAPIError(t *testing.T) {
	c := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.Check(context.Background(), &CheckInput{Version: "1.0.0"})
	assert.Error(t, err)
}

func TestUpdateRefusesDevBuild(t *testing.T) {
	c := NewChecker()
	err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestUpdateAlreadyLatest(t *testing.T) {
	c := newTestChecker(t, releaseHandler("v1.0.0"))
	err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "1.0.0"}, func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrAlreadyLatest)
}

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "arm64", "qlock_Darwin_all.tar.gz", false},
		{"darwin", "amd64", "qlock_Darwin_all.tar.gz", false},
		{"linux", "amd64", "qlock_Linux_x86_64.tar.gz", false},
		{"linux", "arm64", "qlock_Linux_arm64.tar.gz", false},
		{"windows", "386", "qlock_Windows_i386.zip", false},
		{"linux", "mips", "", true},
		{"plan9", "amd64", "", true},
	}
	for _, tt := range tests {
		got, err := assetNameFor(tt.goos, tt.goarch)
		if tt.wantErr {
			assert.Error(t, err, "%s/%s", tt.goos, tt.goarch)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseChecksums(t *testing.T) {
	data := []byte(`
abc123  qlock_Linux_x86_64.tar.gz
def456  qlock_Darwin_all.tar.gz

malformed line without hash parts here
`)
	got := parseChecksums(data)
	assert.Equal(t, "abc123", got["qlock_Linux_x86_64.tar.gz"])
	assert.Equal(t, "def456", got["qlock_Darwin_all.tar.gz"])
	assert.Len(t, got, 2)
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("release bytes")
	assert.Error(t, verifyChecksum(data, "not-the-hash"))
	assert.ErrorIs(t, verifyChecksum(data, "not-the-hash"), ErrChecksum)
}
