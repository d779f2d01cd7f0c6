package handle

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

type fakeConfigStore struct {
	cfg shared.ExclusionConfig
	err error
	// cached copy, served until invalidated
	cached      *shared.ExclusionConfig
	reads       int
	invalidated int
}

func (f *fakeConfigStore) Invalidate() {
	f.invalidated++
	f.cached = nil
}

func (f *fakeConfigStore) GetExclusionConfig(ctx context.Context) (shared.ExclusionConfig, error) {
	if f.cached != nil {
		return *f.cached, nil
	}
	f.reads++
	return f.cfg, f.err
}

type fakeEnumerator struct {
	targets []shared.DeploymentTarget
	err     error
	filters []string
}

func (f *fakeEnumerator) Enumerate(ctx context.Context, accountFilter string, visit func(target shared.DeploymentTarget)) error {
	f.filters = append(f.filters, accountFilter)
	if f.err != nil {
		return f.err
	}
	for _, target := range f.targets {
		if accountFilter != "" && target.Account != accountFilter {
			continue
		}
		visit(target)
	}
	return nil
}

type fakePublisher struct {
	items []shared.WorkItem
	panic bool
}

func (f *fakePublisher) Publish(ctx context.Context, queueURL string, item shared.WorkItem) error {
	if f.panic {
		panic("publisher exploded")
	}
	if queueURL == "" {
		return errors.New("queue url is not set")
	}
	f.items = append(f.items, item)
	return nil
}

type fakeIdentity struct {
	account string
	calls   int
}

func (f *fakeIdentity) GetCallerAccount(ctx context.Context) (string, error) {
	f.calls++
	return f.account, nil
}

type ack struct {
	event      cfn.Event
	status     cfn.StatusType
	data       map[string]interface{}
	physicalID string
}

type fakeAcknowledger struct {
	acks []ack
	err  error
}

func (f *fakeAcknowledger) Acknowledge(ctx context.Context, event cfn.Event, status cfn.StatusType, data map[string]interface{}, physicalID string) error {
	f.acks = append(f.acks, ack{event: event, status: status, data: data, physicalID: physicalID})
	return f.err
}
