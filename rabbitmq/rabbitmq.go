package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory everytime we encode a transaction we reuse
// buffers from this pool. With a single publisher routine there will only ever
// be one buffer here, but the pool scales if more routines are added.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

type (
	SubscribeToTransactionsFunc = func() (posted chan models.Transaction, err error)
	EncodeTransactionFunc       = func(ctx context.Context, w io.Writer, tx models.Transaction) error
)

// Client publishes posted ledger transactions so downstream consumers
// (statements, fraud monitoring) can react without polling the database.
type Client interface {
	StartPublishTransactions(context.Context, SubscribeToTransactionsFunc, EncodeTransactionFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	conn *amqp.Connection

	// It is recommended that, when possible, publishers and consumers
	// use separate connections so that consumers are isolated from potential
	// flow control measures that may be applied to publishing connections.
	publishChannel *amqp.Channel

	logger *lecho.Logger

	ledgerExchange string
}

type ClientOption = func(client *DefaultClient)

func WithLedgerExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.ledgerExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// Dial sets up a connection to rabbitmq with a channel that is ready to publish
func Dial(uri string, options ...ClientOption) (Client, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}

	publishChannel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	client := &DefaultClient{
		conn: conn,

		publishChannel: publishChannel,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		ledgerExchange: "ledgerhub_transaction",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.conn.Close() }

func (client *DefaultClient) StartPublishTransactions(ctx context.Context, subscribeFunc SubscribeToTransactionsFunc, payloadFunc EncodeTransactionFunc) error {
	err := client.publishChannel.ExchangeDeclare(
		client.ledgerExchange,
		// topic exchanges route messages to queues based on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchange's accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check whether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	posted, err := subscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case transaction := <-posted:
			err = client.publishToLedgerExchange(ctx, transaction, payloadFunc)
			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToLedgerExchange(ctx context.Context, transaction models.Transaction, payloadFunc EncodeTransactionFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := payloadFunc(ctx, payload, transaction)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("transaction.%s", strings.ToLower(transaction.Type))

	err = client.publishChannel.PublishWithContext(ctx,
		client.ledgerExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published transaction %d to rabbitmq", transaction.ID)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
