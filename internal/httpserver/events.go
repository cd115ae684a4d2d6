package httpserver

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/robalobadob/seton/internal/game"
)

// message is the wire envelope for input events and server frames, over
// both HTTP and the socket.
type message struct {
	Type     string         `json:"type"`
	Contents map[string]any `json:"contents,omitempty"`
}

// frame is a server-to-client socket message.
type frame struct {
	Type     string `json:"type"` // "snapshot" | "error"
	Contents any    `json:"contents"`
}

// decodeEvent turns a wire message into a typed game event.
func decodeEvent(m message) (game.Event, error) {
	switch m.Type {
	case "pointer_moved":
		return decodeInto[game.PointerMoved](m.Contents)
	case "primary_pressed":
		return game.ButtonPressed{Button: game.ButtonPrimary}, nil
	case "secondary_pressed":
		return game.ButtonPressed{Button: game.ButtonSecondary}, nil
	case "button_pressed":
		ev, err := decodeInto[game.ButtonPressed](m.Contents)
		if err != nil {
			return nil, err
		}
		b, err := checkButton(ev.Button)
		return game.ButtonPressed{Button: b}, err
	case "cell_clicked":
		ev, err := decodeInto[game.CellClicked](m.Contents)
		if err != nil {
			return nil, err
		}
		ev.Button, err = checkButton(ev.Button)
		return ev, err
	case "start":
		return game.StartRound{}, nil
	case "know_it":
		return game.KnowIt{}, nil
	case "done":
		return game.Done{}, nil
	case "config_changed":
		return decodeInto[game.ConfigChanged](m.Contents)
	case "viewport_resized":
		return decodeInto[game.ViewportResized](m.Contents)
	case "tick":
		return game.Tick{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", m.Type)
}

func decodeInto[T game.Event](contents map[string]any) (T, error) {
	var ev T
	if err := mapstructure.Decode(contents, &ev); err != nil {
		return ev, fmt.Errorf("bad contents: %w", err)
	}
	return ev, nil
}

// checkButton defaults an empty button to primary and rejects unknown ones.
func checkButton(b game.Button) (game.Button, error) {
	switch b {
	case "":
		return game.ButtonPrimary, nil
	case game.ButtonPrimary, game.ButtonSecondary:
		return b, nil
	}
	return "", fmt.Errorf("unknown button %q", b)
}
