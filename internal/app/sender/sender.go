// Package sender собирает сервис отправки писем-приглашений:
// потребитель очереди и SMTP-транспорт.
package sender

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/ventureradar/venture-radar/internal/config"
	"github.com/ventureradar/venture-radar/internal/lib/smtp"
	"github.com/ventureradar/venture-radar/internal/rabbitmq"
	senderservice "github.com/ventureradar/venture-radar/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	inviteQueue   string
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.Rabbit.RabbitURL, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, []rabbitmq.QueueConfig{
		{QueueName: cfg.Rabbit.InviteQueue, RoutingKey: rabbitmq.InviteRoutingKey},
	})
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		inviteQueue:   cfg.Rabbit.InviteQueue,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, a.inviteQueue, a.senderService.SendTeamInvite)
	if err != nil {
		a.logger.Error("failed to start invite queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
