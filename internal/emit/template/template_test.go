package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSurgeBase_EmptyPathReturnsNil(t *testing.T) {
	general, dns, err := LoadSurgeBase("")
	require.NoError(t, err)
	require.Nil(t, general)
	require.Nil(t, dns)
}

func TestLoadSurgeBase_ReadsGeneralAndDNSSections(t *testing.T) {
	path := writeTempFile(t, "surge.conf", `[General]
loglevel = notify
skip-proxy = 127.0.0.1

[DNS]
dns-server = 8.8.8.8

[Proxy]
ignored = direct
`)

	general, dns, err := LoadSurgeBase(path)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"loglevel = notify", "skip-proxy = 127.0.0.1"}, general)
	require.Equal(t, []string{"dns-server = 8.8.8.8"}, dns)
}

func TestLoadSurgeBase_MissingFileErrors(t *testing.T) {
	_, _, err := LoadSurgeBase("/nonexistent/surge.conf")
	require.Error(t, err)
}

func TestLoadClashBase_EmptyPathReturnsNil(t *testing.T) {
	doc, err := LoadClashBase("")
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestLoadClashBase_ReadsTopLevelKeys(t *testing.T) {
	path := writeTempFile(t, "clash.yaml", `port: 7890
socks-port: 7891
allow-lan: false
mode: rule
log-level: info
`)

	doc, err := LoadClashBase(path)
	require.NoError(t, err)
	require.Equal(t, 7890, doc["port"])
	require.Equal(t, "rule", doc["mode"])
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
