package overridemgr

import (
	"context"

	"github.com/outofoffice3/config-recorder-override/internal/errormgr"
	"github.com/outofoffice3/config-recorder-override/internal/metricmgr"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

// Reconcile sends a Delete override for every previously excluded account
// other than the caller's own. Each Delete pass falls back to an exclusion
// list holding only the caller's account. Entries that are not account ids
// are skipped.
func (om *_OverrideMgr) Reconcile(ctx context.Context, queueURL string, accounts []string) error {
	if len(accounts) == 0 {
		om.log.Infof("no previously excluded accounts to reconcile")
		return nil
	}

	caller, err := om.identity.GetCallerAccount(ctx)
	if err != nil {
		lookupErr := errormgr.Error{
			Kind:    errormgr.LookupError,
			Message: "get caller identity failed, reconciliation aborted",
			Err:     err,
		}
		om.errorMgr.StoreError(lookupErr)
		return lookupErr
	}
	om.log.Debugf("caller account [%s], previously excluded %v", caller, accounts)

	for _, account := range accounts {
		if account == caller {
			continue
		}
		if !shared.IsValidAccountId(account) {
			om.log.Infof("previously excluded entry [%s] is not an account id, skipped", account)
			continue
		}
		om.metricMgr.IncrementMetric(metricmgr.TotalDeleteRequests, 1)
		om.log.Infof("delete request sent [%s]", account)
		// enumeration failures are already recorded by Override
		_ = om.Override(ctx, OverrideRequest{
			FallbackExclusions: []string{caller},
			QueueURL:           queueURL,
			AccountFilter:      account,
			EventTag:           shared.DeleteTag,
		})
	}
	return nil
}
