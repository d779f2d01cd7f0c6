package overridemgr

import (
	"context"
	"errors"

	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

type fakeConfigStore struct {
	cfg   shared.ExclusionConfig
	err   error
	calls int
}

func (f *fakeConfigStore) Invalidate() {}

func (f *fakeConfigStore) GetExclusionConfig(ctx context.Context) (shared.ExclusionConfig, error) {
	f.calls++
	return f.cfg, f.err
}

type fakeEnumerator struct {
	targets []shared.DeploymentTarget
	// return an error after this many targets, -1 for never
	failAfter int
	filters   []string
}

func (f *fakeEnumerator) Enumerate(ctx context.Context, accountFilter string, visit func(target shared.DeploymentTarget)) error {
	f.filters = append(f.filters, accountFilter)
	for i, target := range f.targets {
		if f.failAfter >= 0 && i == f.failAfter {
			return errors.New("AccessDenied")
		}
		if accountFilter != "" && target.Account != accountFilter {
			continue
		}
		visit(target)
	}
	return nil
}

type fakePublisher struct {
	items    []shared.WorkItem
	queueURL string
	failFor  map[string]bool
}

func (f *fakePublisher) Publish(ctx context.Context, queueURL string, item shared.WorkItem) error {
	f.queueURL = queueURL
	if f.failFor[item.Account+"/"+item.Region] {
		return errors.New("throttled")
	}
	f.items = append(f.items, item)
	return nil
}

type fakeIdentity struct {
	account string
	err     error
	calls   int
}

func (f *fakeIdentity) GetCallerAccount(ctx context.Context) (string, error) {
	f.calls++
	return f.account, f.err
}
