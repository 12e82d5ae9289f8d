package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/magscene/magsav/internal/entity"
)

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	l     *slog.Logger
	w     MessageWriter
	topic string
	sent  func(kind entity.Kind, action entity.RecordAction, err error)
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return NewProducerWithWriter(l, w, topic)
}

func NewProducerWithWriter(l *slog.Logger, w MessageWriter, topic string) *Producer {
	return &Producer{
		l:     l,
		w:     w,
		topic: topic,
	}
}

// OnSent registers a callback invoked after each publish attempt.
func (p *Producer) OnSent(fn func(kind entity.Kind, action entity.RecordAction, err error)) {
	p.sent = fn
}

// SendRecordChanged publishes a record event keyed by kind:id so that events
// of one record stay ordered within a partition. Failures are logged only.
func (p *Producer) SendRecordChanged(ctx context.Context, event entity.RecordEvent) {
	err := p.send(ctx, event)
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("send record event: %s", err))
	}

	if p.sent != nil {
		p.sent(event.Kind, event.Action, err)
	}
}

func (p *Producer) send(ctx context.Context, event entity.RecordEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", event.Kind, event.ID)),
		Value: b,
		Topic: p.topic,
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}

	return nil
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Debug(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
