package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"resume-match-go/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// MessageQueue 消息队列接口
type MessageQueue interface {
	// EnsureTopology 声明交换机/队列并绑定
	EnsureTopology(exchangeName, queueName, routingKey string) error

	// PublishJSON 发布JSON格式持久化消息
	PublishJSON(ctx context.Context, exchangeName, routingKey string, data interface{}) error

	// Consume 消费队列，handler返回nil时ack，否则nack不重投
	Consume(ctx context.Context, queueName string, handler func(ctx context.Context, body []byte) error) error

	// Close 关闭连接
	Close() error
}

// 确保RabbitMQ实现了MessageQueue接口
var _ MessageQueue = (*RabbitMQ)(nil)

// RabbitMQ 提供消息队列功能
type RabbitMQ struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	publishMutex sync.Mutex // 发布共用一个channel，需要串行化
	logger       zerolog.Logger
}

// NewRabbitMQ 创建RabbitMQ客户端
func NewRabbitMQ(cfg *config.RabbitMQConfig, logger zerolog.Logger) (*RabbitMQ, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("RabbitMQ URL配置不能为空")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建RabbitMQ通道失败: %w", err)
	}

	return &RabbitMQ{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

// EnsureTopology 实现MessageQueue接口
func (mq *RabbitMQ) EnsureTopology(exchangeName, queueName, routingKey string) error {
	if err := mq.channel.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明交换机 %s 失败: %w", exchangeName, err)
	}
	if _, err := mq.channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明队列 %s 失败: %w", queueName, err)
	}
	if err := mq.channel.QueueBind(queueName, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("绑定队列 %s 到 %s 失败: %w", queueName, exchangeName, err)
	}
	return nil
}

// PublishJSON 实现MessageQueue接口
func (mq *RabbitMQ) PublishJSON(ctx context.Context, exchangeName, routingKey string, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	mq.publishMutex.Lock()
	defer mq.publishMutex.Unlock()
	err = mq.channel.PublishWithContext(ctx, exchangeName, routingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("发布消息到 %s/%s 失败: %w", exchangeName, routingKey, err)
	}
	return nil
}

// Consume 实现MessageQueue接口。阻塞运行直到ctx取消或通道关闭
func (mq *RabbitMQ) Consume(ctx context.Context, queueName string, handler func(ctx context.Context, body []byte) error) error {
	// 消费用独立channel，避免和发布互相干扰
	channel, err := mq.conn.Channel()
	if err != nil {
		return fmt.Errorf("创建消费通道失败: %w", err)
	}
	defer channel.Close()

	if err := channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置预取失败: %w", err)
	}

	deliveries, err := channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("订阅队列 %s 失败: %w", queueName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("队列 %s 的消费通道已关闭", queueName)
			}
			if err := handler(ctx, delivery.Body); err != nil {
				mq.logger.Error().Err(err).Str("queue", queueName).Msg("消息处理失败，丢弃")
				_ = delivery.Nack(false, false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

// Close 实现MessageQueue接口
func (mq *RabbitMQ) Close() error {
	if mq.channel != nil {
		_ = mq.channel.Close()
	}
	return mq.conn.Close()
}
