package metrics

import (
	"fmt"
	"strings"
)

type MetricType string

const (
	Gauge MetricType = "gauge"
	Timer MetricType = "timer"
)

// Suffix returns the statsd type marker for the metric type.
func (t MetricType) Suffix() string {
	if t == Timer {
		return "ms"
	}
	return "g"
}

// GeneralProcessInfo is the entity path used for rows that do not describe
// a proxy or a server.
const GeneralProcessInfo = "general_process_info"

type Metric struct {
	Path  string
	Value string
	Type  MetricType
}

// Packet formats the metric as a statsd line: path:value|type.
func (m Metric) Packet() string {
	return fmt.Sprintf("%s:%s|%s", m.Path, m.Value, m.Type.Suffix())
}

func (m Metric) String() string {
	return m.Packet()
}

// ExcludedFields are identifiers and status strings that are never reported.
var ExcludedFields = map[string]struct{}{
	"pxname": {}, "svname": {}, "status": {}, "check_status": {}, "check_code": {},
	"last_chk": {}, "last_agt": {}, "pid": {}, "iid": {}, "sid": {},
	"tracked": {}, "type": {}, "Pid": {},
}

// TimerFields are reported with the timer type instead of gauge.
var TimerFields = map[string]struct{}{
	"check_duration": {}, "qtime": {}, "ctime": {}, "rtime": {}, "ttime": {},
}

func IsExcluded(field string) bool {
	_, ok := ExcludedFields[field]
	return ok
}

func TypeOf(field string) MetricType {
	if _, ok := TimerFields[field]; ok {
		return Timer
	}
	return Gauge
}

// SanitizeName makes a field name safe for a dot separated metric path.
func SanitizeName(field string) string {
	return strings.ReplaceAll(field, "-", "_")
}
