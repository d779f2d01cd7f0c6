package configstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/config-recorder-override/internal/cache"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

// GetObjectAPI is the part of the s3 client the reader uses.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Reader fetches the exclusion config document.
type Reader interface {
	GetExclusionConfig(ctx context.Context) (shared.ExclusionConfig, error)
	// drop any cached copy so the next read goes to the store
	Invalidate()
}

type _Reader struct {
	client GetObjectAPI
	bucket string
	key    string
	cache  cache.Cache
	log    logger.Logger
}

type ReaderInitConfig struct {
	Client GetObjectAPI
	Bucket string
	Key    string
	// when set, the document is read once and served from the cache after that
	Cache  cache.Cache
	Logger logger.Logger
}

func NewReader(config ReaderInitConfig) (Reader, error) {
	if config.Client == nil {
		return nil, errors.New("s3 client is not set")
	}
	if config.Bucket == "" || config.Key == "" {
		return nil, errors.New("config bucket or key is not set")
	}
	log := config.Logger
	if log == nil {
		log = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_Reader{
		client: config.Client,
		bucket: config.Bucket,
		key:    config.Key,
		cache:  config.Cache,
		log:    log,
	}, nil
}

func (r *_Reader) Invalidate() {
	if r.cache == nil {
		return
	}
	r.cache.Delete(r.cacheKey())
	r.log.Debugf("exclusion config cache entry [%s] dropped", r.cacheKey())
}

func (r *_Reader) cacheKey() cache.CacheKey {
	return cache.CacheKey{PK: r.bucket, SK: r.key}
}

func (r *_Reader) GetExclusionConfig(ctx context.Context) (shared.ExclusionConfig, error) {
	cacheKey := r.cacheKey()
	if r.cache != nil {
		if cfg, ok := r.cache.Get(cacheKey); ok {
			r.log.Debugf("exclusion config served from cache [%s]", cacheKey)
			return cfg, nil
		}
	}

	getObjectOutput, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	// return errors
	if err != nil {
		return shared.ExclusionConfig{}, errors.New("failed to get object from s3 : [" + err.Error() + "]")
	}
	defer getObjectOutput.Body.Close()

	objectContent, err := io.ReadAll(getObjectOutput.Body)
	if err != nil {
		return shared.ExclusionConfig{}, errors.New("failed to read object content : [" + err.Error() + "]")
	}
	r.log.Debugf("content of s3://%s/%s : [%s]", r.bucket, r.key, string(objectContent))

	var cfg shared.ExclusionConfig
	if err := json.Unmarshal(objectContent, &cfg); err != nil {
		return shared.ExclusionConfig{}, errors.New("failed to unmarshal object content : [" + err.Error() + "]")
	}
	if r.cache != nil {
		r.cache.Set(cacheKey, cfg)
	}
	return cfg, nil
}
