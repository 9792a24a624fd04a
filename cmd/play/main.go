package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamasit07/connect-four/internal/broker/redis"
	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/terminal"
	"github.com/spf13/pflag"
)

var (
	colors        = pflag.StringSlice("colors", []string{"red", "yellow"}, "one color per human player, in turn order")
	computer      = pflag.String("computer", "", "color of a computer opponent that moves last")
	width         = pflag.Int("width", config.GetEnvAsInt("BOARD_WIDTH", 7), "board width")
	height        = pflag.Int("height", config.GetEnvAsInt("BOARD_HEIGHT", 6), "board height")
	delay         = pflag.Duration("delay", 0, "pause before each computer move")
	policy        = pflag.String("policy", bot.PolicyOpen, "computer move policy: open or legacy")
	watch         = pflag.String("watch", "", "follow a game running elsewhere instead of playing")
	redisAddr     = pflag.String("redis", config.GetEnv("REDIS_URL", ""), "redis address used to mirror or follow games")
	redisPassword = pflag.String("redis-password", config.GetEnv("REDIS_PASSWORD", ""), "redis password")
)

func main() {
	pflag.Parse()
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := terminal.NewConsole(os.Stdout)

	var publisher *redis.Publisher
	if *redisAddr != "" {
		client, err := redis.Connect(ctx, *redisAddr, *redisPassword)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		publisher = redis.NewPublisher(client)
		defer publisher.Close()
	}

	if *watch != "" {
		if publisher == nil {
			log.Fatal("--watch needs --redis")
		}
		events, err := publisher.Subscribe(ctx, *watch)
		if err != nil {
			log.Fatalf("subscribe %s: %v", *watch, err)
		}
		console.Printf("Following game %s\n", *watch)
		if err := terminal.Follow(ctx, console, events); err != nil && err != context.Canceled {
			log.Fatal(err)
		}
		return
	}

	picker, err := bot.NewPicker(*policy, nil)
	if err != nil {
		log.Fatal(err)
	}

	notifiers := game.Notifiers{console}
	if publisher != nil {
		notifiers = append(notifiers, publisher)
	}
	sm := game.NewSessionManager(notifiers, picker, *delay)
	svc := game.NewService(sm, *width, *height, 0)

	session, err := svc.CreateGame(game.Setup{Colors: *colors, ComputerColor: *computer})
	if err != nil {
		log.Fatal(err)
	}

	last, err := terminal.Play(ctx, svc, console, session.GameID, os.Stdin)
	sm.RemoveSession(last)
	if err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
