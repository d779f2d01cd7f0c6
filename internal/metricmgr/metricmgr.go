package metricmgr

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
)

type MetricMgr interface {
	// Increment metric
	IncrementMetric(metric Metric, value int32) error
	// Decrement metric
	DecrementMetric(metric Metric, value int32) error
	// Retreive Metric
	GetMetric(metric Metric) (int32, bool)
	// summary line for logging
	Summary() string
	// set metric
	setMetric(metric Metric, ptr *int32) error
}

type _MetricMgr struct {
	metrics map[Metric]*int32
}

// Init returns a metric manager with every dispatch metric set to 0.
func Init() MetricMgr {
	metricMgr := NewMetricMgr()
	for _, metric := range allMetrics {
		value := int32(0)
		metricMgr.setMetric(metric, &value)
	}
	return metricMgr
}

func NewMetricMgr() MetricMgr {
	return &_MetricMgr{
		metrics: make(map[Metric]*int32),
	}
}

func (m *_MetricMgr) IncrementMetric(metric Metric, value int32) error {
	if _, ok := m.GetMetric(metric); !ok {
		return errors.New("metric " + string(metric) + " not found")
	}
	atomic.AddInt32(m.metrics[metric], value)
	return nil
}

func (m *_MetricMgr) DecrementMetric(metric Metric, value int32) error {
	if _, ok := m.GetMetric(metric); !ok {
		return errors.New("metric " + string(metric) + " not found")
	}
	atomic.AddInt32(m.metrics[metric], -value)
	return nil
}

func (m *_MetricMgr) GetMetric(metric Metric) (int32, bool) {
	if _, ok := m.metrics[metric]; !ok {
		return int32(0), false
	}
	return atomic.LoadInt32(m.metrics[metric]), true
}

// Summary renders all metrics as name=value pairs sorted by name.
func (m *_MetricMgr) Summary() string {
	names := make([]string, 0, len(m.metrics))
	for metric := range m.metrics {
		names = append(names, string(metric))
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		value := atomic.LoadInt32(m.metrics[Metric(name)])
		pairs = append(pairs, name+"="+strconv.Itoa(int(value)))
	}
	return strings.Join(pairs, " ")
}

func (m *_MetricMgr) setMetric(metric Metric, ptr *int32) error {
	if _, ok := m.metrics[metric]; ok {
		return errors.New("metric " + string(metric) + " already exists")
	}
	m.metrics[metric] = ptr
	return nil
}
