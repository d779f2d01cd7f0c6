package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/config-recorder-override/internal/callback"
	"github.com/outofoffice3/config-recorder-override/internal/configstore"
	"github.com/outofoffice3/config-recorder-override/internal/enumerator"
	"github.com/outofoffice3/config-recorder-override/internal/errormgr"
	"github.com/outofoffice3/config-recorder-override/internal/identity"
	"github.com/outofoffice3/config-recorder-override/internal/metricmgr"
	"github.com/outofoffice3/config-recorder-override/internal/overridemgr"
	"github.com/outofoffice3/config-recorder-override/internal/publisher"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

/*

Handler is the entry point for every trigger of the function :

- classifying the inbound event (config file change, control tower
  lifecycle notification, cloudformation custom resource request)
- fanning recorder override work items out to the queue
- reconciling previously excluded accounts on custom resource updates
- acknowledging custom resource requests exactly once

Handle never fails the trigger. Errors are logged and reported in the
Outcome returned by Dispatch.

*/

type Handler interface {
	// lambda entry point, always returns status 200
	Handle(ctx context.Context, event json.RawMessage) (shared.Response, error)
	// classify and run the matching workflow
	Dispatch(ctx context.Context, event json.RawMessage) Outcome
}

// Outcome summarizes one dispatch.
type Outcome struct {
	Classification Classification
	Acknowledged   bool
	Errors         []error
	Metrics        string
}

type _Handler struct {
	cfg          shared.Config
	configStore  configstore.Reader
	enumerator   enumerator.Enumerator
	publisher    publisher.Publisher
	identity     identity.Resolver
	acknowledger callback.Acknowledger
	log          logger.Logger
}

type HandlerInitConfig struct {
	Config       shared.Config
	ConfigStore  configstore.Reader
	Enumerator   enumerator.Enumerator
	Publisher    publisher.Publisher
	Identity     identity.Resolver
	Acknowledger callback.Acknowledger
	Logger       logger.Logger
}

func Init(config HandlerInitConfig) (Handler, error) {
	if config.ConfigStore == nil || config.Enumerator == nil || config.Publisher == nil ||
		config.Identity == nil || config.Acknowledger == nil {
		return nil, errors.New("handler dependencies are not set")
	}
	log := config.Logger
	if log == nil {
		log = config.Config.NewLogger()
	}
	return &_Handler{
		cfg:          config.Config,
		configStore:  config.ConfigStore,
		enumerator:   config.Enumerator,
		publisher:    config.Publisher,
		identity:     config.Identity,
		acknowledger: config.Acknowledger,
		log:          log,
	}, nil
}

func (h *_Handler) Handle(ctx context.Context, event json.RawMessage) (response shared.Response, err error) {
	response = shared.Response{StatusCode: shared.StatusOK}
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorf("recovered from panic : [%v]", r)
			response = shared.Response{StatusCode: shared.StatusOK}
			err = nil
		}
	}()

	h.log.Debugf("event data : [%s]", string(event))
	outcome := h.Dispatch(ctx, event)
	h.log.Infof("dispatch [%s] [%s] finished with [%d] errors : %s",
		outcome.Classification.Action, outcome.Classification.EventName, len(outcome.Errors), outcome.Metrics)
	h.log.Infof("execution successful")
	return response, nil
}

func (h *_Handler) Dispatch(ctx context.Context, event json.RawMessage) (outcome Outcome) {
	errorMgr := errormgr.NewErrorMgr(h.log)
	metricMgr := metricmgr.Init()
	outcome.Classification = noAction
	defer func() {
		outcome.Errors = errorMgr.GetErrors()
		outcome.Metrics = metricMgr.Summary()
	}()

	c, err := Classify(event, h.cfg.ConfigFileSuffix())
	outcome.Classification = c
	if err != nil {
		errorMgr.StoreError(errormgr.Error{
			Kind:    errormgr.ClassificationError,
			Message: "event could not be classified",
			Err:     err,
		})
		return outcome
	}
	h.log.Infof("event shape [%s], event name [%s], action [%s]", c.Shape, c.EventName, c.Action)

	om, err := overridemgr.Init(overridemgr.OverrideMgrInitConfig{
		ConfigStore: h.configStore,
		Enumerator:  h.enumerator,
		Publisher:   h.publisher,
		Identity:    h.identity,
		ErrorMgr:    errorMgr,
		MetricMgr:   metricMgr,
		Logger:      h.log,
	})
	if err != nil {
		errorMgr.StoreError(err)
		return outcome
	}

	if c.Shape == QueueNotificationShape {
		// the exclusion document itself changed
		h.configStore.Invalidate()
	}

	req := overridemgr.OverrideRequest{
		FallbackExclusions: h.fallbackExclusions(errorMgr),
		QueueURL:           h.cfg.QueueURL,
		AccountFilter:      c.AccountFilter,
		EventTag:           c.EventTag,
	}

	switch c.Action {
	case SingleAccountOverride, AllAccountOverride:
		{
			_ = om.Override(ctx, req)
		}
	case CustomResourceRequest:
		{
			outcome.Acknowledged = h.handleCustomResource(ctx, om, req, *c.CustomResource, errorMgr)
		}
	default:
		{
			h.log.Infof("no matching event found")
		}
	}
	return outcome
}

// handleCustomResource runs the override for a Create, Update or Delete
// request and acknowledges it once, whether or not the override failed.
func (h *_Handler) handleCustomResource(ctx context.Context, om overridemgr.OverrideMgr, req overridemgr.OverrideRequest, event cfn.Event, errorMgr errormgr.ErrorMgr) (acknowledged bool) {
	defer func() {
		acknowledged = h.acknowledge(ctx, event, errorMgr)
	}()

	h.log.Infof("overriding config recorder for ALL accounts for custom resource [%s] request", event.RequestType)
	_ = om.Override(ctx, req)
	if event.RequestType == cfn.RequestUpdate {
		// a list that failed to parse reconciles nothing
		_ = om.Reconcile(ctx, h.cfg.QueueURL, req.FallbackExclusions)
	}
	return false
}

func (h *_Handler) acknowledge(ctx context.Context, event cfn.Event, errorMgr errormgr.ErrorMgr) bool {
	err := h.acknowledger.Acknowledge(ctx, event, cfn.StatusSuccess, map[string]interface{}{}, shared.CustomResourcePhysicalID)
	if err != nil {
		errorMgr.StoreError(errormgr.Error{
			Kind:    errormgr.AcknowledgeError,
			Message: fmt.Sprintf("acknowledge [%s] request [%s]", event.RequestType, event.RequestID),
			Err:     err,
		})
		return false
	}
	return true
}

// fallbackExclusions decodes EXCLUDED_ACCOUNTS once per dispatch. The list
// backs the override when the config store is unreadable and is the set of
// previously excluded accounts for reconciliation.
func (h *_Handler) fallbackExclusions(errorMgr errormgr.ErrorMgr) []string {
	accounts, err := shared.ParseAccountList(h.cfg.ExcludedAccounts)
	if err != nil {
		errorMgr.StoreError(errormgr.Error{
			Kind:    errormgr.ParseError,
			Message: "fallback exclusion list [" + h.cfg.ExcludedAccounts + "] ignored",
			Err:     err,
		})
		return nil
	}
	h.log.Debugf("excluded accounts : %v", accounts)
	return accounts
}
