package guestbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	subjectPrefix   = "GUESTBOOK#"
	signaturePrefix = "SIGNATURE#"

	// DateLayout renders dates as AWSDateTime.
	DateLayout = "2006-01-02T15:04:05.000Z07:00"

	// DefaultListLimit caps how many signatures List returns.
	DefaultListLimit = 100
)

var (
	ErrInvalidSubject   = errors.New("invalid subject")
	ErrInvalidSignature = errors.New("invalid signature")
)

// DynamoDB is the subset of the DynamoDB API the store uses.
type DynamoDB interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// item is the table representation of a Signature.
type item struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	Signature
}

// Store keeps signatures in the API's single table, one partition per
// subject, sorted by date.
type Store struct {
	client    DynamoDB
	table     string
	logger    *zap.Logger
	validate  *validator.Validate
	now       func() time.Time
	newID     func() string
	listLimit int
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides time.Now for signature dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides random UUIDs for signature ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithListLimit caps how many signatures List returns. Values below 1 keep
// DefaultListLimit.
func WithListLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

func NewStore(client DynamoDB, table string, opts ...Option) *Store {
	s := &Store{
		client:    client,
		table:     table,
		logger:    zap.NewNop(),
		validate:  validator.New(),
		now:       time.Now,
		newID:     uuid.NewString,
		listLimit: DefaultListLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("guestbook").With(zap.String("table", table))
	return s
}

// Add validates image and records it as a new signature of subject.
func (s *Store) Add(ctx context.Context, subject string, image Image) (*Signature, error) {
	if err := s.validateSubject(subject); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(image); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	sig := Signature{
		ID:      s.newID(),
		Subject: subject,
		Date:    s.now().UTC().Format(DateLayout),
		Image:   image,
	}

	av, err := attributevalue.MarshalMap(item{
		PK:        subjectPrefix + subject,
		SK:        signaturePrefix + sig.Date + "#" + sig.ID,
		Signature: sig,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding signature: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		return nil, fmt.Errorf("storing signature for %q: %w", subject, err)
	}

	s.logger.Info("signature added",
		zap.String("subject", subject),
		zap.String("id", sig.ID),
		zap.Int("lines", len(image.Lines)),
	)
	return &sig, nil
}

// List returns the signatures of subject, newest first.
func (s *Store) List(ctx context.Context, subject string) ([]Signature, error) {
	if err := s.validateSubject(subject); err != nil {
		return nil, err
	}

	pk, err := attributevalue.Marshal(subjectPrefix + subject)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(signaturePrefix)
	if err != nil {
		return nil, err
	}

	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": pk,
			":sk": sk,
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(s.listLimit)),
	})

	signatures := []Signature{}
	for paginator.HasMorePages() && len(signatures) < s.listLimit {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("querying signatures for %q: %w", subject, err)
		}

		var items []item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("decoding signatures: %w", err)
		}
		for _, it := range items {
			signatures = append(signatures, it.Signature)
		}
	}

	if len(signatures) > s.listLimit {
		signatures = signatures[:s.listLimit]
	}
	return signatures, nil
}

func (s *Store) validateSubject(subject string) error {
	if err := s.validate.Var(subject, "required,max=128,printascii"); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidSubject, subject, err)
	}
	return nil
}
