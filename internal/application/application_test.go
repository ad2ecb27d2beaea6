package application

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DieOfCode/haproxy-statsd/internal/configuration"
	"github.com/DieOfCode/haproxy-statsd/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const report = "# pxname,svname,scur,status,\nfe,s1,3,UP,\n"

func TestRunContext_Once(t *testing.T) {
	for _, key := range []string{"HAPROXY_SOCKET", "STATSD_NAMESPACE", "HAPROXYSTATSD_STATUS_LISTEN"} {
		t.Setenv(key, "")
	}

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(report))
	}))
	defer page.Close()

	statsd, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer statsd.Close()

	path := filepath.Join(t.TempDir(), "haproxy-statsd.conf")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
[haproxy-statsd]
haproxy_url = %q
statsd_host = "127.0.0.1"
statsd_port = %d
statsd_namespace = "haproxy"
`, page.URL+"/;csv", statsd.LocalAddr().(*net.UDPAddr).Port)), 0o600))

	var output bytes.Buffer
	err = RunContext(context.Background(), Options{
		ConfigPath:     path,
		ConfigRequired: true,
		Once:           true,
		Output:         &output,
	})
	require.NoError(t, err)

	buf := make([]byte, 1024)
	require.NoError(t, statsd.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, err := statsd.Read(buf)
	require.NoError(t, err)

	assert.Equal(t, "haproxy.fe.s1.scur:3|g", string(buf[:n]))
	assert.Contains(t, output.String(), "Reported 1 stats")
}

func TestRunContext_ConfigError(t *testing.T) {
	var output bytes.Buffer
	err := RunContext(context.Background(), Options{
		ConfigPath:     filepath.Join(t.TempDir(), "missing.conf"),
		ConfigRequired: true,
		Once:           true,
		Output:         &output,
	})

	require.Error(t, err)
	assert.Contains(t, output.String(), "Configuration error")
}

func TestNewSource(t *testing.T) {
	config := configuration.Default()
	assert.IsType(t, &stats.HTTPSource{}, NewSource(&config))

	config.HAProxySocket = "/var/lib/haproxy/stats"
	assert.IsType(t, &stats.SocketSource{}, NewSource(&config))
}
