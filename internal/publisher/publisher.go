package publisher

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

// SendMessageAPI is the part of the sqs client the publisher uses.
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher puts one work item on the recorder override queue.
type Publisher interface {
	Publish(ctx context.Context, queueURL string, item shared.WorkItem) error
}

type _Publisher struct {
	client SendMessageAPI
	log    logger.Logger
}

func NewPublisher(client SendMessageAPI, log logger.Logger) (Publisher, error) {
	if client == nil {
		return nil, errors.New("sqs client is not set")
	}
	if log == nil {
		log = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_Publisher{
		client: client,
		log:    log,
	}, nil
}

func (p *_Publisher) Publish(ctx context.Context, queueURL string, item shared.WorkItem) error {
	if queueURL == "" {
		return errors.New("queue url is not set")
	}
	body, err := json.Marshal(item)
	if err != nil {
		return err
	}
	output, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return err
	}
	p.log.Infof("message sent to sqs [%s] : %s", aws.ToString(output.MessageId), string(body))
	return nil
}
