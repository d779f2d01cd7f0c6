package awsclientmgr

type AWSServiceName string

const (
	S3             AWSServiceName = "S3"
	SQS            AWSServiceName = "SQS"
	STS            AWSServiceName = "STS"
	CLOUDFORMATION AWSServiceName = "CloudFormation"
)
