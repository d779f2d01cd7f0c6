package metricmgr

type Metric string

const (
	TotalOverrides      Metric = "totalOverrides"
	TotalTargets        Metric = "totalTargets"
	TotalPublished      Metric = "totalPublished"
	TotalExcluded       Metric = "totalExcluded"
	TotalDeleteRequests Metric = "totalDeleteRequests"

	TotalFailedPublishes    Metric = "totalFailedPublishes"
	TotalFailedEnumerations Metric = "totalFailedEnumerations"
)

var allMetrics = []Metric{
	TotalOverrides,
	TotalTargets,
	TotalPublished,
	TotalExcluded,
	TotalDeleteRequests,
	TotalFailedPublishes,
	TotalFailedEnumerations,
}
