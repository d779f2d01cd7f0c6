package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/config-recorder-override/handle"
	"github.com/outofoffice3/config-recorder-override/internal/awsclientmgr"
	"github.com/outofoffice3/config-recorder-override/internal/cache"
	"github.com/outofoffice3/config-recorder-override/internal/callback"
	"github.com/outofoffice3/config-recorder-override/internal/configstore"
	"github.com/outofoffice3/config-recorder-override/internal/enumerator"
	"github.com/outofoffice3/config-recorder-override/internal/identity"
	"github.com/outofoffice3/config-recorder-override/internal/publisher"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

var (
	awsClientMgr   awsclientmgr.AWSClientMgr
	exclusionCache cache.Cache
)

func handler(ctx context.Context, event json.RawMessage) (shared.Response, error) {
	cfg, err := shared.LoadConfig()
	log := cfg.NewLogger()
	if err != nil {
		log.Errorf("%v, unparsed settings left unset", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Errorf("%v", err)
	}

	h, err := newHandler(cfg, log)
	if err != nil {
		// never fail the trigger
		log.Errorf("failed to build handler : [%v]", err)
		return shared.Response{StatusCode: shared.StatusOK}, nil
	}
	return h.Handle(ctx, event)
}

func newHandler(cfg shared.Config, log logger.Logger) (handle.Handler, error) {
	s3Client, err := awsClientMgr.GetS3Client()
	if err != nil {
		return nil, err
	}
	sqsClient, err := awsClientMgr.GetSQSClient()
	if err != nil {
		return nil, err
	}
	stsClient, err := awsClientMgr.GetSTSClient()
	if err != nil {
		return nil, err
	}
	cfnClient, err := awsClientMgr.GetCloudFormationClient()
	if err != nil {
		return nil, err
	}

	var readerCache cache.Cache
	if cfg.CacheExclusionConfig {
		readerCache = exclusionCache
	}
	store, err := configstore.NewReader(configstore.ReaderInitConfig{
		Client: s3Client,
		Bucket: cfg.ConfigBucketName,
		Key:    cfg.ConfigFileKey,
		Cache:  readerCache,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}
	stackInstances, err := enumerator.NewEnumerator(enumerator.EnumeratorInitConfig{
		Client:       cfnClient,
		StackSetName: cfg.StackSetName,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}
	queue, err := publisher.NewPublisher(sqsClient, log)
	if err != nil {
		return nil, err
	}
	caller, err := identity.NewResolver(stsClient)
	if err != nil {
		return nil, err
	}

	return handle.Init(handle.HandlerInitConfig{
		Config:       cfg,
		ConfigStore:  store,
		Enumerator:   stackInstances,
		Publisher:    queue,
		Identity:     caller,
		Acknowledger: callback.NewAcknowledger(log),
		Logger:       log,
	})
}

func main() {
	lambda.Start(handler)
}

func init() {
	envConfig, envErr := shared.LoadConfig()
	log := envConfig.NewLogger()
	log.Infof("main init started")
	if envErr != nil {
		log.Errorf("%v, unparsed settings left unset", envErr)
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Errorf("failed to load SDK config, %v", err)
		panic("failed to load sdk config")
	}
	log.Infof("SDK config loaded for region [%s]", cfg.Region)

	awsClientMgr, err = awsclientmgr.Init(awsclientmgr.AWSClientMgrInitConfig{
		Cfg:                 cfg,
		Logger:              log,
		ProvisioningRoleArn: envConfig.ProvisioningRoleArn,
	})
	if err != nil {
		log.Errorf("failed to load sdk clients, %v", err)
		panic("failed to load sdk clients")
	}
	exclusionCache = cache.NewCache()
	log.Infof("main init finished")
}
