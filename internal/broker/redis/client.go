package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "connect4:games:"

// Channel is the pub/sub channel carrying the events of one game.
func Channel(gameID string) string {
	return channelPrefix + gameID
}

// Connect opens a client and pings it. Callers treat an error as "run
// without Redis".
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          0,
		DialTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

const publishBuffer = 256

type message struct {
	channel string
	payload []byte
}

// Publisher mirrors game events onto Redis so other processes can follow
// games. Nothing is stored. Events go out one at a time in the order they
// were published.
type Publisher struct {
	client  *redis.Client
	send    func(ctx context.Context, channel string, payload []byte) error
	timeout time.Duration
	queue   chan message
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewPublisher(client *redis.Client) *Publisher {
	p := newPublisher(func(ctx context.Context, channel string, payload []byte) error {
		return client.Publish(ctx, channel, payload).Err()
	})
	p.client = client
	return p
}

func newPublisher(send func(ctx context.Context, channel string, payload []byte) error) *Publisher {
	p := &Publisher{
		send:    send,
		timeout: 2 * time.Second,
		queue:   make(chan message, publishBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish queues evt and returns at once so a slow Redis never holds up a
// move.
func (p *Publisher) Publish(evt domain.GameEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[REDIS] Could not encode %s event for game %s: %v", evt.Type, evt.GameID, err)
		return
	}

	select {
	case <-p.done:
		return
	default:
	}

	select {
	case p.queue <- message{channel: Channel(evt.GameID), payload: payload}:
	default:
		log.Printf("[REDIS] Publish queue full, dropping %s event for game %s", evt.Type, evt.GameID)
	}
}

// run owns every write to Redis.
func (p *Publisher) run() {
	defer close(p.stopped)
	for {
		select {
		case m := <-p.queue:
			p.deliver(m)
		case <-p.done:
			// flush what was queued before Close
			for {
				select {
				case m := <-p.queue:
					p.deliver(m)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) deliver(m message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.send(ctx, m.channel, m.payload); err != nil {
		log.Printf("[REDIS] Publish to %s failed: %v", m.channel, err)
	}
}

// Subscribe decodes the events of one game until ctx is done.
func (p *Publisher) Subscribe(ctx context.Context, gameID string) (<-chan domain.GameEvent, error) {
	sub := p.client.Subscribe(ctx, Channel(gameID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan domain.GameEvent)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt domain.GameEvent
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					log.Printf("[REDIS] Dropping malformed message on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close flushes queued events and closes the client.
func (p *Publisher) Close() error {
	p.once.Do(func() { close(p.done) })
	<-p.stopped
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
