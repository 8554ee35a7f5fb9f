package rabbitmq

import "github.com/magabrotheeeer/daily-bulletin/internal/events"

// QueueConfig описывает очередь и ключ маршрутизации, которым она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues возвращает очереди доменных событий.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "bulletin.article.status", RoutingKey: events.RouteArticleStatus},
		{QueueName: "bulletin.payment.recorded", RoutingKey: events.RoutePaymentRecorded},
	}
}
