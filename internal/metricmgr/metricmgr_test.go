package metricmgr

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMgr(t *testing.T) {
	assertion := assert.New(t)

	mm := Init()
	assertion.NotNil(mm)

	// every metric starts at 0
	for _, metric := range allMetrics {
		value, ok := mm.GetMetric(metric)
		assertion.True(ok, string(metric))
		assertion.Equal(int32(0), value, string(metric))
	}

	// ##############################################
	// increment metric
	// ##############################################

	err := mm.IncrementMetric(TotalTargets, 3)
	assertion.NoError(err)
	value, ok := mm.GetMetric(TotalTargets)
	assertion.True(ok)
	assertion.Equal(int32(3), value)

	err = mm.IncrementMetric(TotalPublished, 2)
	assertion.NoError(err)
	err = mm.IncrementMetric(TotalExcluded, 1)
	assertion.NoError(err)

	// ##############################################
	// decrement metric
	// ##############################################

	err = mm.DecrementMetric(TotalTargets, 3)
	assertion.NoError(err)
	value, ok = mm.GetMetric(TotalTargets)
	assertion.True(ok)
	assertion.Equal(int32(0), value)

	assertion.Equal("totalDeleteRequests=0 totalExcluded=1 totalFailedEnumerations=0 totalFailedPublishes=0 totalOverrides=0 totalPublished=2 totalTargets=0", mm.Summary())

	// #####################################
	// errors
	// #####################################

	err = mm.IncrementMetric("TotalTargets", 1)
	assertion.Error(err)

	err = mm.DecrementMetric("TotalTargets", 1)
	assertion.Error(err)

	_, ok = mm.GetMetric("TotalTargets")
	assertion.False(ok)

	number := int32(0)
	err = mm.setMetric(TotalTargets, &number)
	assertion.Error(err)
}

func TestMetricMgrConcurrentIncrement(t *testing.T) {
	assertion := assert.New(t)
	mm := Init()

	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mm.IncrementMetric(TotalPublished, 1)
		}()
	}
	wg.Wait()

	value, ok := mm.GetMetric(TotalPublished)
	assertion.True(ok)
	assertion.Equal(int32(100), value)
}
