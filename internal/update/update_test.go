package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewer(t *testing.T) {
	cases := []struct {
		current, latest string
		want            bool
	}{
		{"v3.1.7", "v3.1.8", true},
		{"v3.1.7", "3.2", true},
		{"v3.1.7", "v3.1.7", false},
		{"v3.1.7", "v3.1", false},
		{"v3.1", "v3.1.0", true},
		{"v3.1.7", "v2.9.9", false},
		{"v3.1.7", "garbage", false},
		{"garbage", "v0.0.1", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Newer(tc.current, tc.latest), "%s -> %s", tc.current, tc.latest)
	}
}

func TestCheck(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"latest_version":"v3.2.0","update_package_url":"https://example.com/Kodi TextureTool.zip","changelog":["- v3.2.0","Faster info"]}`)
	}))
	defer srv.Close()

	res, err := NewChecker().Check(context.Background(), srv.URL, "v3.1.7")
	require.NoError(t, err)

	assert.Equal(t, "KodiTextureTool-Update-Checker", gotUA)
	assert.True(t, res.Available)
	assert.Equal(t, "v3.2.0", res.Manifest.LatestVersion)

	dl, err := res.DownloadURL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/Kodi%20TextureTool.zip", dl)
	assert.Equal(t, []string{"- v3.2.0", "  Faster info"}, ChangelogLines(res.Manifest.Changelog))
}

func TestCheckDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latest_version":"v3.1.7"}`)
	}))
	defer srv.Close()

	res, err := NewChecker().Check(context.Background(), srv.URL, "v3.1.7")
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, DefaultDownloadURL, res.Manifest.UpdatePackageURL)
	assert.Equal(t, []string{"No changelog available."}, res.Manifest.Changelog)
}

func TestCheckMissingVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"changelog":[]}`)
	}))
	defer srv.Close()

	_, err := NewChecker().Check(context.Background(), srv.URL, "v3.1.7")
	assert.ErrorIs(t, err, ErrMissingVersion)
}

func TestCheckHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewChecker().Check(context.Background(), srv.URL, "v3.1.7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
