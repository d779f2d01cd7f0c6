package enumerator

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

// Enumerator walks the deployment targets of the baseline stack set.
type Enumerator interface {
	// visit every (account, region) target page by page. accountFilter
	// limits the walk to one account when non-empty. visit is called for
	// each target of a page before the next page is requested.
	Enumerate(ctx context.Context, accountFilter string, visit func(target shared.DeploymentTarget)) error
}

type _Enumerator struct {
	client       cloudformation.ListStackInstancesAPIClient
	stackSetName string
	log          logger.Logger
}

type EnumeratorInitConfig struct {
	Client       cloudformation.ListStackInstancesAPIClient
	StackSetName string
	Logger       logger.Logger
}

func NewEnumerator(config EnumeratorInitConfig) (Enumerator, error) {
	if config.Client == nil {
		return nil, errors.New("cloudformation client is not set")
	}
	if config.StackSetName == "" {
		return nil, errors.New("stack set name is not set")
	}
	log := config.Logger
	if log == nil {
		log = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_Enumerator{
		client:       config.Client,
		stackSetName: config.StackSetName,
		log:          log,
	}, nil
}

func (e *_Enumerator) Enumerate(ctx context.Context, accountFilter string, visit func(target shared.DeploymentTarget)) error {
	input := &cloudformation.ListStackInstancesInput{
		StackSetName: aws.String(e.stackSetName),
	}
	if accountFilter != "" {
		input.StackInstanceAccount = aws.String(accountFilter)
	}

	paginator := cloudformation.NewListStackInstancesPaginator(e.client, input)
	page := 0
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		page++
		e.log.Debugf("stack set [%s] page [%d] : [%d] instances", e.stackSetName, page, len(output.Summaries))
		for _, summary := range output.Summaries {
			target := shared.DeploymentTarget{
				Account: aws.ToString(summary.Account),
				Region:  aws.ToString(summary.Region),
			}
			if target.Account == "" || target.Region == "" {
				e.log.Infof("skipping incomplete stack instance summary [%+v]", target)
				continue
			}
			visit(target)
		}
	}
	return nil
}
