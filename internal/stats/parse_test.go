package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statReport = `# pxname,svname,qcur,qmax,scur,smax,status,check_duration,bin-rate,
http-in,FRONTEND,,,3,10,OPEN,,100,
app,web1,0,0,1,4,UP,2,,
app,BACKEND,0,0,1,4,UP,,,

`

func TestParseCSV(t *testing.T) {
	rows := ParseCSV(strings.NewReader(statReport))

	require.Len(t, rows, 3)

	assert.Equal(t, RowOf(
		"pxname", "http-in", "svname", "FRONTEND", "qcur", "", "qmax", "",
		"scur", "3", "smax", "10", "status", "OPEN", "check_duration", "", "bin-rate", "100",
	), rows[0])

	value, ok := rows[1].Get("check_duration")
	require.True(t, ok)
	assert.Equal(t, "2", value)

	// trailing empty fields are trimmed together with the commas
	assert.False(t, rows[2].Has("bin-rate"))
	assert.True(t, rows[2].IsProxy())
}

func TestParseCSV_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   []Row
	}{
		{
			name:   "empty",
			report: "",
			want:   nil,
		},
		{
			name:   "header only",
			report: "# pxname,svname,scur,\n",
			want:   nil,
		},
		{
			name:   "without comment marker",
			report: "pxname,svname,scur\nfe,FRONTEND,1\n",
			want:   []Row{RowOf("pxname", "fe", "svname", "FRONTEND", "scur", "1")},
		},
		{
			name:   "short line",
			report: "# pxname,svname,scur,smax,\nfe,FRONTEND\n",
			want:   []Row{RowOf("pxname", "fe", "svname", "FRONTEND")},
		},
		{
			name:   "extra fields ignored",
			report: "# pxname,svname,scur,\nfe,FRONTEND,1,2,3,\n",
			want:   []Row{RowOf("pxname", "fe", "svname", "FRONTEND", "scur", "1")},
		},
		{
			name:   "crlf line endings",
			report: "# pxname,svname,scur,\r\nfe,FRONTEND,1,\r\n",
			want:   []Row{RowOf("pxname", "fe", "svname", "FRONTEND", "scur", "1")},
		},
		{
			name:   "blank lines skipped",
			report: "# pxname,svname,scur,\n\nfe,FRONTEND,1,\n\n\nbe,BACKEND,2,\n",
			want: []Row{
				RowOf("pxname", "fe", "svname", "FRONTEND", "scur", "1"),
				RowOf("pxname", "be", "svname", "BACKEND", "scur", "2"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCSV(strings.NewReader(tt.report)))
		})
	}
}

func TestParseInfo(t *testing.T) {
	info := strings.Join([]string{
		"Name: HAProxy",
		"Version: 1.5.8",
		"Uptime: 0d 0h01m02s",
		"Uptime_sec: 62",
		"Memmax_MB: 256",
		"Pid: 1234",
		"no separator here",
		"Release_date: 2014/10/31",
		"node: lb:1",
		": orphan",
		"",
	}, "\n")

	rows := ParseInfo(strings.NewReader(info))

	assert.Equal(t, []Row{
		RowOf("Name", "HAProxy"),
		RowOf("Version", "1.5.8"),
		RowOf("Uptime", "0d 0h01m02s"),
		RowOf("Uptime_sec", "62"),
		RowOf("Memmax_MB", "256"),
		RowOf("Pid", "1234"),
		RowOf("Release_date", "2014/10/31"),
		RowOf("", "orphan"),
	}, rows)
}

func TestParseInfo_SkipsTimestamps(t *testing.T) {
	rows := ParseInfo(strings.NewReader("Date: 12:00:01\nNbproc: 1\n"))

	assert.Equal(t, []Row{RowOf("Nbproc", "1")}, rows)
}

func TestParseInfo_LongLine(t *testing.T) {
	info := "Description: " + strings.Repeat("x", 70*1024) + "\nNbproc: 1\nUptime_sec: 42\n"

	rows := ParseInfo(strings.NewReader(info))

	require.Len(t, rows, 3)
	assert.Equal(t, RowOf("Nbproc", "1"), rows[1])
	assert.Equal(t, RowOf("Uptime_sec", "42"), rows[2])
}
