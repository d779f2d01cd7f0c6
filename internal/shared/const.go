package shared

const (
	ConfigFileBucketName S3BucketName = "smt-config-recorder"
	ConfigFileObjKey     S3ObjectKey  = "config/params-config-recorder.json"
	BaselineStackSetName StackSetName = "AWSControlTowerBP-BASELINE-CONFIG"

	EnvLogLevel             EnvVar = "LOG_LEVEL"
	EnvQueueURL             EnvVar = "SQS_URL"
	EnvExcludedAccounts     EnvVar = "EXCLUDED_ACCOUNTS"
	EnvBucketName           EnvVar = "CONFIG_BUCKET_NAME"
	EnvConfigFileKey        EnvVar = "CONFIG_FILE_KEY"
	EnvStackSetName         EnvVar = "STACK_SET_NAME"
	EnvProvisioningRoleArn  EnvVar = "PROVISIONING_ROLE_ARN"
	EnvCacheExclusionConfig EnvVar = "CACHE_EXCLUSION_CONFIG"

	ControlTowerSource EventSource = "aws.controltower"

	UpdateManagedAccount        EventName = "UpdateManagedAccount"
	CreateManagedAccount        EventName = "CreateManagedAccount"
	UpdateLandingZone           EventName = "UpdateLandingZone"
	UpdateLandingZoneByS3Change EventName = "UpdateLandingZoneByS3Change"

	ControlTowerTag EventTag = "controltower"
	CreateTag       EventTag = "Create"
	UpdateTag       EventTag = "Update"
	DeleteTag       EventTag = "Delete"

	CustomResourcePhysicalID string = "CustomResourcePhysicalID"

	StatusOK int = 200
)
