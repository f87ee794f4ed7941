package crm_test

import (
	"sync"

	"github.com/sirupsen/logrus"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

type publishedEvent struct {
	topic string
	key   string
	event interface{}
}

// stubPublisher собирает опубликованные события для проверок.
type stubPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *stubPublisher) PublishEvent(topic string, key string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func (p *stubPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]publishedEvent, len(p.events))
	copy(result, p.events)
	return result
}
