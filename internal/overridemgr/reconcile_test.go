package overridemgr

import (
	"context"
	"errors"
	"testing"

	"github.com/outofoffice3/config-recorder-override/internal/errormgr"
	"github.com/outofoffice3/config-recorder-override/internal/metricmgr"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
	"github.com/stretchr/testify/assert"
)

func TestReconcileIssuesDeleteForOtherAccounts(t *testing.T) {
	assertion := assert.New(t)
	d := newTestDeps(t, fleet, nil)

	err := d.om.Reconcile(context.Background(), queueURL, []string{"111111111111", "222222222222"})
	assertion.NoError(err)

	// exactly one Delete override, targeting the account that is not the caller
	assertion.Equal([]string{"111111111111"}, d.enumerator.filters)
	assertion.Equal(int32(1), d.metric(metricmgr.TotalDeleteRequests))
	assertion.Len(d.publisher.items, 2)
	for _, item := range d.publisher.items {
		assertion.Equal("111111111111", item.Account)
		assertion.Equal(shared.DeleteTag, item.Event)
	}
	assertion.Equal(1, d.identity.calls)
}

func TestReconcileFallbackHoldsOnlyCaller(t *testing.T) {
	assertion := assert.New(t)
	d := newTestDeps(t, fleet, nil)
	d.store.err = errors.New("NoSuchKey")

	err := d.om.Reconcile(context.Background(), queueURL, []string{"222222222222", "333333333333"})
	assertion.NoError(err)
	assertion.Equal([]string{"333333333333"}, d.enumerator.filters)
	assertion.Len(d.publisher.items, 1)
	assertion.Equal("333333333333", d.publisher.items[0].Account)
}

func TestReconcileSkipsEntriesThatAreNotAccountIds(t *testing.T) {
	assertion := assert.New(t)
	d := newTestDeps(t, fleet, nil)

	err := d.om.Reconcile(context.Background(), queueURL, []string{"None", "111111111111", "12345"})
	assertion.NoError(err)
	assertion.Equal([]string{"111111111111"}, d.enumerator.filters)
	assertion.Equal(int32(1), d.metric(metricmgr.TotalDeleteRequests))
	for _, item := range d.publisher.items {
		assertion.Equal("111111111111", item.Account)
	}
}

func TestReconcileEmptyList(t *testing.T) {
	assertion := assert.New(t)
	d := newTestDeps(t, fleet, nil)

	assertion.NoError(d.om.Reconcile(context.Background(), queueURL, nil))
	assertion.NoError(d.om.Reconcile(context.Background(), queueURL, []string{}))
	assertion.Equal(0, d.identity.calls)
	assertion.Empty(d.enumerator.filters)
}

func TestReconcileIdentityFailure(t *testing.T) {
	assertion := assert.New(t)
	d := newTestDeps(t, fleet, nil)
	d.identity.err = errors.New("ExpiredToken")

	err := d.om.Reconcile(context.Background(), queueURL, []string{"111111111111"})
	assertion.Error(err)
	assertion.Equal(errormgr.LookupError, errormgr.KindOf(err))
	assertion.Empty(d.enumerator.filters)
}

func TestReconcileContinuesAfterEnumerationFailure(t *testing.T) {
	assertion := assert.New(t)
	d := newTestDeps(t, fleet, nil)
	d.enumerator.failAfter = 0

	err := d.om.Reconcile(context.Background(), queueURL, []string{"111111111111", "333333333333"})
	assertion.NoError(err)
	assertion.Equal([]string{"111111111111", "333333333333"}, d.enumerator.filters)
	assertion.Len(d.errorMgr.GetErrorsByKind(errormgr.EnumerationError), 2)
}
