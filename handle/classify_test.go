package handle

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
	"github.com/stretchr/testify/assert"
)

const suffix = "params-config-recorder.json"

func TestClassify(t *testing.T) {
	assertion := assert.New(t)

	c, err := Classify(json.RawMessage(`{"Records": [{"s3": {"object": {"key": "params-config-recorder.json"}}}]}`), suffix)
	assertion.NoError(err)
	assertion.Equal(QueueNotificationShape, c.Shape)
	assertion.Equal(AllAccountOverride, c.Action)
	assertion.Equal(shared.ControlTowerTag, c.EventTag)

	c, err = Classify(managedAccountEvent("CreateManagedAccount", "createManagedAccountStatus", "111111111111"), suffix)
	assertion.NoError(err)
	assertion.Equal(LifecycleNotificationShape, c.Shape)
	assertion.Equal(SingleAccountOverride, c.Action)
	assertion.Equal(shared.CreateManagedAccount, c.EventName)
	assertion.Equal("111111111111", c.AccountFilter)

	c, err = Classify(customResourceEvent("Update"), suffix)
	assertion.NoError(err)
	assertion.Equal(CustomResourceShape, c.Shape)
	assertion.Equal(CustomResourceRequest, c.Action)
	assertion.Equal(shared.UpdateTag, c.EventTag)
	assertion.NotNil(c.CustomResource)
	assertion.Equal(cfn.RequestUpdate, c.CustomResource.RequestType)
	assertion.Equal("ConfigRecorderOverride", c.CustomResource.LogicalResourceID)

	c, err = Classify(json.RawMessage(`{"hello": "world"}`), suffix)
	assertion.NoError(err)
	assertion.Equal(UnknownShape, c.Shape)
	assertion.Equal(NoAction, c.Action)
}

func TestClassifyRecordsFallThrough(t *testing.T) {
	assertion := assert.New(t)

	// a records envelope that is not the config file falls through to the next shape
	c, err := Classify(json.RawMessage(`{
		"Records": [{"s3": {"object": {"key": "other.json"}}}],
		"source": "aws.controltower",
		"detail": {"eventName": "UpdateLandingZone"}
	}`), suffix)
	assertion.NoError(err)
	assertion.Equal(LifecycleNotificationShape, c.Shape)
	assertion.Equal(AllAccountOverride, c.Action)

	c, err = Classify(json.RawMessage(`{"Records": []}`), suffix)
	assertion.NoError(err)
	assertion.Equal(NoAction, c.Action)

	// empty suffix never matches
	c, err = Classify(json.RawMessage(`{"Records": [{"s3": {"object": {"key": "params-config-recorder.json"}}}]}`), "")
	assertion.NoError(err)
	assertion.Equal(NoAction, c.Action)
}

func TestClassifyErrors(t *testing.T) {
	assertion := assert.New(t)

	malformed := []string{
		`[]`,
		`{"source": 7}`,
		`{"source": "aws.controltower"}`,
		`{"source": "aws.controltower", "detail": {"eventName": "CreateManagedAccount"}}`,
		`{"LogicalResourceId": "x", "RequestType": 3}`,
		`{"LogicalResourceId": "x", "RequestType": "Replace"}`,
	}
	for _, raw := range malformed {
		c, err := Classify(json.RawMessage(raw), suffix)
		assertion.Error(err, raw)
		assertion.Equal(NoAction, c.Action, raw)
	}
}
