package handle

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/events"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

// Shape is the envelope an inbound event arrived in.
type Shape string

const (
	UnknownShape               Shape = "unknown"
	QueueNotificationShape     Shape = "queue-notification"
	LifecycleNotificationShape Shape = "lifecycle-notification"
	CustomResourceShape        Shape = "custom-resource"
)

// Action is what the dispatcher does with a classified event.
type Action string

const (
	NoAction              Action = "none"
	SingleAccountOverride Action = "single-account-override"
	AllAccountOverride    Action = "all-account-override"
	CustomResourceRequest Action = "custom-resource-request"
)

// Classification is the result of inspecting one inbound event.
type Classification struct {
	Shape         Shape
	Action        Action
	EventName     shared.EventName
	EventTag      shared.EventTag
	AccountFilter string
	// set for custom resource requests
	CustomResource *cfn.Event
}

var noAction = Classification{Shape: UnknownShape, Action: NoAction}

// Classify decides the single action for raw. configFileSuffix is the
// object name whose change means the landing zone configuration changed.
// The returned error describes an event that matched a shape but could not
// be read; the classification is NoAction in that case.
func Classify(raw json.RawMessage, configFileSuffix string) (Classification, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return noAction, errors.New("event is not a json object : [" + err.Error() + "]")
	}

	if _, ok := fields["Records"]; ok {
		if c, matched := classifyQueueNotification(raw, configFileSuffix); matched {
			return c, nil
		}
	}
	if _, ok := fields["source"]; ok {
		return classifyLifecycleNotification(raw)
	}
	if _, ok := fields["LogicalResourceId"]; ok {
		return classifyCustomResource(raw)
	}
	return noAction, nil
}

func classifyQueueNotification(raw json.RawMessage, configFileSuffix string) (Classification, bool) {
	var s3Event events.S3Event
	if err := json.Unmarshal(raw, &s3Event); err != nil || len(s3Event.Records) == 0 {
		return noAction, false
	}
	key := s3Event.Records[0].S3.Object.Key
	if configFileSuffix == "" || !strings.HasSuffix(key, configFileSuffix) {
		return noAction, false
	}
	return Classification{
		Shape:     QueueNotificationShape,
		Action:    AllAccountOverride,
		EventName: shared.UpdateLandingZoneByS3Change,
		EventTag:  shared.ControlTowerTag,
	}, true
}

func classifyLifecycleNotification(raw json.RawMessage) (Classification, error) {
	var event events.CloudWatchEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return noAction, errors.New("malformed lifecycle notification : [" + err.Error() + "]")
	}
	c := Classification{Shape: LifecycleNotificationShape, Action: NoAction}
	if shared.EventSource(event.Source) != shared.ControlTowerSource {
		return c, nil
	}

	var detail shared.ControlTowerDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return c, errors.New("malformed control tower detail : [" + err.Error() + "]")
	}
	c.EventName = detail.EventName

	switch detail.EventName {
	case shared.CreateManagedAccount, shared.UpdateManagedAccount:
		{
			accountId, ok := detail.ManagedAccountId()
			if !ok {
				return c, errors.New("[" + string(detail.EventName) + "] event has no account id")
			}
			c.Action = SingleAccountOverride
			c.EventTag = shared.ControlTowerTag
			c.AccountFilter = accountId
		}
	case shared.UpdateLandingZone:
		{
			c.Action = AllAccountOverride
			c.EventTag = shared.ControlTowerTag
		}
	}
	return c, nil
}

func classifyCustomResource(raw json.RawMessage) (Classification, error) {
	var event cfn.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return noAction, errors.New("malformed custom resource event : [" + err.Error() + "]")
	}
	c := Classification{
		Shape:     CustomResourceShape,
		Action:    NoAction,
		EventName: shared.EventName(event.RequestType),
	}
	switch event.RequestType {
	case cfn.RequestCreate, cfn.RequestUpdate, cfn.RequestDelete:
		c.Action = CustomResourceRequest
		c.EventTag = shared.EventTag(event.RequestType)
		c.CustomResource = &event
		return c, nil
	}
	return c, errors.New("unsupported custom resource request type [" + string(event.RequestType) + "]")
}
