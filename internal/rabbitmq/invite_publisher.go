package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/ventureradar/venture-radar/internal/models"
)

// Ключ маршрутизации уведомлений о приглашениях.
const InviteRoutingKey = "team.invite"

// InvitePublisher публикует уведомления о приглашениях в exchange уведомлений.
type InvitePublisher struct {
	ch *amqp.Channel
}

// NewInvitePublisher создает новый InvitePublisher.
func NewInvitePublisher(ch *amqp.Channel) *InvitePublisher {
	return &InvitePublisher{ch: ch}
}

// PublishInvite публикует сообщение о приглашении участника.
func (p *InvitePublisher) PublishInvite(message models.InviteMessage) error {
	return PublishMessage(p.ch, NotificationsExchange, InviteRoutingKey, message)
}
