package terminal

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

const prompt = "column (1-%d), n = new game, q = quit> "

// Play reads commands from in until it ends, ctx is done or the player
// quits. It returns the id of the last game played.
func Play(ctx context.Context, svc *game.Service, console *Console, gameID string, in io.Reader) (string, error) {
	session, err := svc.Get(gameID)
	if err != nil {
		return gameID, err
	}
	view := session.Snapshot()
	console.Legend(view)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		console.Printf(prompt, view.Width)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return gameID, ctx.Err()
		case line, ok = <-lines:
			if !ok {
				return gameID, nil
			}
		}

		switch cmd := strings.TrimSpace(line); cmd {
		case "":
			continue
		case "q", "quit":
			return gameID, nil
		case "n", "new":
			fresh, err := svc.Restart(gameID)
			if err != nil {
				console.Printf("%v\n", err)
				continue
			}
			gameID = fresh.GameID
			view = fresh.Snapshot()
			console.Legend(view)
		default:
			column, err := strconv.Atoi(cmd)
			if err != nil {
				console.Printf("not a column: %q\n", cmd)
				continue
			}
			if _, _, err := svc.Move(gameID, column-1); err != nil {
				console.Printf("%v\n", err)
			}
		}
	}
}

// Follow prints events from a remote game until the channel closes or a
// game_over arrives.
func Follow(ctx context.Context, console *Console, events <-chan domain.GameEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			console.Publish(evt)
			if evt.Type == domain.EventGameOver {
				return nil
			}
		}
	}
}
