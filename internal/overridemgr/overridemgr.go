package overridemgr

import (
	"context"
	"errors"

	configServiceTypes "github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/config-recorder-override/internal/configstore"
	"github.com/outofoffice3/config-recorder-override/internal/enumerator"
	"github.com/outofoffice3/config-recorder-override/internal/errormgr"
	"github.com/outofoffice3/config-recorder-override/internal/identity"
	"github.com/outofoffice3/config-recorder-override/internal/metricmgr"
	"github.com/outofoffice3/config-recorder-override/internal/publisher"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

// OverrideMgr fans recorder override work items out to the queue.
type OverrideMgr interface {
	// publish one work item per deployment target
	Override(ctx context.Context, req OverrideRequest) error
	// issue Delete overrides for accounts dropped from the exclusion list
	Reconcile(ctx context.Context, queueURL string, previouslyExcluded []string) error
}

// OverrideRequest describes one fan-out pass.
type OverrideRequest struct {
	// used when the config store cannot be read
	FallbackExclusions []string
	QueueURL           string
	// empty for all accounts
	AccountFilter string
	EventTag      shared.EventTag
}

type _OverrideMgr struct {
	configStore configstore.Reader
	enumerator  enumerator.Enumerator
	publisher   publisher.Publisher
	identity    identity.Resolver
	errorMgr    errormgr.ErrorMgr
	metricMgr   metricmgr.MetricMgr
	log         logger.Logger
}

type OverrideMgrInitConfig struct {
	ConfigStore configstore.Reader
	Enumerator  enumerator.Enumerator
	Publisher   publisher.Publisher
	Identity    identity.Resolver
	ErrorMgr    errormgr.ErrorMgr
	MetricMgr   metricmgr.MetricMgr
	Logger      logger.Logger
}

func Init(config OverrideMgrInitConfig) (OverrideMgr, error) {
	if config.ConfigStore == nil || config.Enumerator == nil || config.Publisher == nil || config.Identity == nil {
		return nil, errors.New("config store, enumerator, publisher and identity resolver are required")
	}
	log := config.Logger
	if log == nil {
		log = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	errorMgr := config.ErrorMgr
	if errorMgr == nil {
		errorMgr = errormgr.NewErrorMgr(log)
	}
	metricMgr := config.MetricMgr
	if metricMgr == nil {
		metricMgr = metricmgr.Init()
	}
	return &_OverrideMgr{
		configStore: config.ConfigStore,
		enumerator:  config.Enumerator,
		publisher:   config.Publisher,
		identity:    config.Identity,
		errorMgr:    errorMgr,
		metricMgr:   metricMgr,
		log:         log,
	}, nil
}

// ExcludedResourceList is the recorder exclusion list for one target.
func ExcludedResourceList(account string, region string) []string {
	return []string{
		string(configServiceTypes.ResourceTypeNetworkInterface),
		string(configServiceTypes.ResourceTypeVolume),
	}
}

func (om *_OverrideMgr) Override(ctx context.Context, req OverrideRequest) error {
	om.metricMgr.IncrementMetric(metricmgr.TotalOverrides, 1)
	if req.AccountFilter == "" {
		om.log.Infof("overriding config recorder for ALL accounts [%s]", req.EventTag)
	} else {
		om.log.Infof("overriding config recorder for SINGLE account [%s] [%s]", req.AccountFilter, req.EventTag)
	}

	err := om.enumerator.Enumerate(ctx, req.AccountFilter, func(target shared.DeploymentTarget) {
		om.metricMgr.IncrementMetric(metricmgr.TotalTargets, 1)
		om.publishWorkItem(ctx, req, target)
	})
	if err != nil {
		om.metricMgr.IncrementMetric(metricmgr.TotalFailedEnumerations, 1)
		enumErr := errormgr.Error{
			Kind:      errormgr.EnumerationError,
			AccountId: req.AccountFilter,
			Message:   "list stack instances failed, fan-out aborted",
			Err:       err,
		}
		om.errorMgr.StoreError(enumErr)
		return enumErr
	}
	return nil
}

// publishWorkItem re-reads the exclusion config and publishes unless the
// target account is excluded. Failures are recorded and never returned.
func (om *_OverrideMgr) publishWorkItem(ctx context.Context, req OverrideRequest, target shared.DeploymentTarget) {
	exclusions, err := om.configStore.GetExclusionConfig(ctx)
	if err != nil {
		om.errorMgr.StoreError(errormgr.Error{
			Kind:      errormgr.LookupError,
			AccountId: target.Account,
			Region:    target.Region,
			Message:   "exclusion config unavailable, using fallback list",
			Err:       err,
		})
		exclusions = shared.ExclusionConfig{ExcludedAccounts: req.FallbackExclusions}
	}

	if exclusions.Excludes(target.Account) {
		om.metricMgr.IncrementMetric(metricmgr.TotalExcluded, 1)
		om.log.Infof("account excluded [%s] [%s]", target.Account, target.Region)
		return
	}

	item := shared.WorkItem{
		Account:              target.Account,
		Region:               target.Region,
		Event:                req.EventTag,
		ExcludedResourceList: ExcludedResourceList(target.Account, target.Region),
	}
	if err := om.publisher.Publish(ctx, req.QueueURL, item); err != nil {
		om.metricMgr.IncrementMetric(metricmgr.TotalFailedPublishes, 1)
		om.errorMgr.StoreError(errormgr.Error{
			Kind:      errormgr.PublishError,
			AccountId: target.Account,
			Region:    target.Region,
			Message:   "send message failed",
			Err:       err,
		})
		return
	}
	om.metricMgr.IncrementMetric(metricmgr.TotalPublished, 1)
}
