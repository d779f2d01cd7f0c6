package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// GetCallerIdentityAPI is the part of the sts client the resolver uses.
type GetCallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Resolver returns the account the function runs in.
type Resolver interface {
	GetCallerAccount(ctx context.Context) (string, error)
}

type _Resolver struct {
	client GetCallerIdentityAPI
}

func NewResolver(client GetCallerIdentityAPI) (Resolver, error) {
	if client == nil {
		return nil, errors.New("sts client is not set")
	}
	return &_Resolver{client: client}, nil
}

func (r *_Resolver) GetCallerAccount(ctx context.Context) (string, error) {
	output, err := r.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	account := aws.ToString(output.Account)
	if account == "" {
		return "", errors.New("caller identity has no account")
	}
	return account, nil
}
