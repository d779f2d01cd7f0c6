package callback

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/outofoffice3/common/logger"
)

// Acknowledger signals the custom resource framework that an invocation finished.
type Acknowledger interface {
	Acknowledge(ctx context.Context, event cfn.Event, status cfn.StatusType, data map[string]interface{}, physicalID string) error
}

type _Acknowledger struct {
	log logger.Logger
}

func NewAcknowledger(log logger.Logger) Acknowledger {
	if log == nil {
		log = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_Acknowledger{log: log}
}

// Acknowledge PUTs the response document to the pre-signed response url of event.
func (a *_Acknowledger) Acknowledge(ctx context.Context, event cfn.Event, status cfn.StatusType, data map[string]interface{}, physicalID string) error {
	if event.ResponseURL == "" {
		return errors.New("custom resource event has no response url")
	}
	response := cfn.NewResponse(&event)
	response.Status = status
	response.PhysicalResourceID = physicalID
	response.Data = data
	response.Reason = "See the details in CloudWatch Log Stream: " + lambdacontext.LogStreamName

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		a.log.Debugf("acknowledging request [%s] for lambda request [%s]", event.RequestID, lc.AwsRequestID)
	}
	if err := response.Send(); err != nil {
		return err
	}
	a.log.Infof("sent [%s] for [%s] [%s]", status, event.RequestType, event.LogicalResourceID)
	return nil
}
