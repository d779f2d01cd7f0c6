package awsclientmgr

import (
	"errors"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/outofoffice3/common/logger"
)

type AWSClientMgr interface {
	// set aws sdk client
	SetSDKClient(name AWSServiceName, client interface{}) error
	// get aws sdk client
	GetSDKClient(name AWSServiceName) (interface{}, bool)
	// typed getters
	GetS3Client() (*s3.Client, error)
	GetSQSClient() (*sqs.Client, error)
	GetSTSClient() (*sts.Client, error)
	GetCloudFormationClient() (*cloudformation.Client, error)
}

type _AWSClientMgr struct {
	mu                   sync.RWMutex
	s3Client             *s3.Client
	sqsClient            *sqs.Client
	stsClient            *sts.Client
	cloudFormationClient *cloudformation.Client
}

type AWSClientMgrInitConfig struct {
	Cfg    aws.Config
	Logger logger.Logger
	// role assumed for stack set enumeration, empty to use the function role
	ProvisioningRoleArn string
}

// Init builds every sdk client the dispatcher needs from one aws config.
func Init(pkgConfig AWSClientMgrInitConfig) (AWSClientMgr, error) {
	log := pkgConfig.Logger
	if log == nil {
		log = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	sdkConfig := pkgConfig.Cfg.Copy()
	awsclient := NewAWSClientMgr()

	stsClient := sts.NewFromConfig(sdkConfig)
	errMsgs := []string{}
	setClient := func(name AWSServiceName, client interface{}) {
		if err := awsclient.SetSDKClient(name, client); err != nil {
			errMsgs = append(errMsgs, err.Error())
			return
		}
		log.Debugf("[%s] client loaded", name)
	}
	setClient(STS, stsClient)
	setClient(S3, s3.NewFromConfig(sdkConfig))
	setClient(SQS, sqs.NewFromConfig(sdkConfig))

	cfnConfig := sdkConfig.Copy()
	if pkgConfig.ProvisioningRoleArn != "" {
		log.Infof("assuming role [%s] for stack set enumeration", pkgConfig.ProvisioningRoleArn)
		creds := stscreds.NewAssumeRoleProvider(stsClient, pkgConfig.ProvisioningRoleArn)
		cfnConfig.Credentials = aws.NewCredentialsCache(creds)
	}
	setClient(CLOUDFORMATION, cloudformation.NewFromConfig(cfnConfig))

	if len(errMsgs) > 0 {
		return nil, errors.New("error loading sdk clients: " + strings.Join(errMsgs, " | "))
	}
	log.Debugf("sdk clients loaded successfully")
	return awsclient, nil
}

func NewAWSClientMgr() AWSClientMgr {
	return &_AWSClientMgr{}
}

// set aws sdk client
func (a *_AWSClientMgr) SetSDKClient(serviceName AWSServiceName, client interface{}) error {
	if client == nil {
		return errors.New("client is nil")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	switch serviceName {
	case S3:
		{
			clientAssert, ok := client.(*s3.Client)
			if !ok {
				return errors.New("client is not an s3 client")
			}
			a.s3Client = clientAssert
		}
	case SQS:
		{
			clientAssert, ok := client.(*sqs.Client)
			if !ok {
				return errors.New("client is not an sqs client")
			}
			a.sqsClient = clientAssert
		}
	case STS:
		{
			clientAssert, ok := client.(*sts.Client)
			if !ok {
				return errors.New("client is not an sts client")
			}
			a.stsClient = clientAssert
		}
	case CLOUDFORMATION:
		{
			clientAssert, ok := client.(*cloudformation.Client)
			if !ok {
				return errors.New("client is not a cloudformation client")
			}
			a.cloudFormationClient = clientAssert
		}
	default:
		{
			return errors.New("invalid service name [" + string(serviceName) + "]")
		}
	}
	return nil
}

// get aws sdk client
func (a *_AWSClientMgr) GetSDKClient(serviceName AWSServiceName) (interface{}, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	switch serviceName {
	case S3:
		return a.s3Client, a.s3Client != nil
	case SQS:
		return a.sqsClient, a.sqsClient != nil
	case STS:
		return a.stsClient, a.stsClient != nil
	case CLOUDFORMATION:
		return a.cloudFormationClient, a.cloudFormationClient != nil
	}
	return nil, false
}

func (a *_AWSClientMgr) GetS3Client() (*s3.Client, error) {
	client, ok := a.GetSDKClient(S3)
	if !ok {
		return nil, errors.New("s3 client not loaded")
	}
	return client.(*s3.Client), nil
}

func (a *_AWSClientMgr) GetSQSClient() (*sqs.Client, error) {
	client, ok := a.GetSDKClient(SQS)
	if !ok {
		return nil, errors.New("sqs client not loaded")
	}
	return client.(*sqs.Client), nil
}

func (a *_AWSClientMgr) GetSTSClient() (*sts.Client, error) {
	client, ok := a.GetSDKClient(STS)
	if !ok {
		return nil, errors.New("sts client not loaded")
	}
	return client.(*sts.Client), nil
}

func (a *_AWSClientMgr) GetCloudFormationClient() (*cloudformation.Client, error) {
	client, ok := a.GetSDKClient(CLOUDFORMATION)
	if !ok {
		return nil, errors.New("cloudformation client not loaded")
	}
	return client.(*cloudformation.Client), nil
}
