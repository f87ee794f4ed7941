package domain

// EventPublisher публикует события о созданных записях во внешнюю шину.
// Реализация должна быть безопасной для конкурентного использования;
// nil-publisher означает, что публикация выключена.
type EventPublisher interface {
	PublishEvent(topic string, key string, event interface{}) error
}
