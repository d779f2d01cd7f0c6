package shared

import (
	"encoding/json"
	"strings"
)

type EnvVar string
type S3BucketName string
type S3ObjectKey string
type StackSetName string
type EventSource string
type EventName string
type EventTag string

// Response is returned to the invoking trigger on every path.
type Response struct {
	StatusCode int `json:"statusCode"`
}

// ExclusionConfig is the document stored in the config bucket.
type ExclusionConfig struct {
	ExcludedAccounts []string `json:"ExcludedAccounts"`
}

// Excludes reports whether account is listed in the exclusion config.
func (c ExclusionConfig) Excludes(account string) bool {
	for _, excluded := range c.ExcludedAccounts {
		if excluded == account {
			return true
		}
	}
	return false
}

// DeploymentTarget is one (account, region) stack instance of the baseline stack set.
type DeploymentTarget struct {
	Account string `json:"account"`
	Region  string `json:"region"`
}

// WorkItem is the message consumed by the recorder override worker.
type WorkItem struct {
	Account              string   `json:"Account"`
	Region               string   `json:"Region"`
	Event                EventTag `json:"Event"`
	ExcludedResourceList []string `json:"-"`
}

type workItemWire struct {
	Account                            string   `json:"Account"`
	Region                             string   `json:"Region"`
	Event                              EventTag `json:"Event"`
	ConfigRecorderExcludedResourceList string   `json:"ConfigRecorderExcludedResourceList"`
}

// MarshalJSON emits the flat wire format the consumer expects, with the
// resource list comma joined.
func (w WorkItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(workItemWire{
		Account:                            w.Account,
		Region:                             w.Region,
		Event:                              w.Event,
		ConfigRecorderExcludedResourceList: strings.Join(w.ExcludedResourceList, ","),
	})
}

// UnmarshalJSON reads the flat wire format back into a WorkItem.
func (w *WorkItem) UnmarshalJSON(data []byte) error {
	var wire workItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	w.Account = wire.Account
	w.Region = wire.Region
	w.Event = wire.Event
	w.ExcludedResourceList = nil
	if wire.ConfigRecorderExcludedResourceList != "" {
		w.ExcludedResourceList = strings.Split(wire.ConfigRecorderExcludedResourceList, ",")
	}
	return nil
}

// ManagedAccountStatus is the account section of a control tower service event.
type ManagedAccountStatus struct {
	Account struct {
		AccountName string `json:"accountName"`
		AccountId   string `json:"accountId"`
	} `json:"account"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// ControlTowerDetail is the detail payload of a control tower lifecycle event.
type ControlTowerDetail struct {
	EventName           EventName `json:"eventName"`
	ServiceEventDetails struct {
		CreateManagedAccountStatus *ManagedAccountStatus `json:"createManagedAccountStatus"`
		UpdateManagedAccountStatus *ManagedAccountStatus `json:"updateManagedAccountStatus"`
	} `json:"serviceEventDetails"`
}

// ManagedAccountId returns the account id for the event name, if present.
func (d ControlTowerDetail) ManagedAccountId() (string, bool) {
	var status *ManagedAccountStatus
	switch d.EventName {
	case CreateManagedAccount:
		status = d.ServiceEventDetails.CreateManagedAccountStatus
	case UpdateManagedAccount:
		status = d.ServiceEventDetails.UpdateManagedAccountStatus
	}
	if status == nil || status.Account.AccountId == "" {
		return "", false
	}
	return status.Account.AccountId, true
}
