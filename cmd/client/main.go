package main

import (
	"bufio"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"flip7-server/pkg/playable"

	"github.com/gorilla/websocket"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var server = flag.String("server", "ws://localhost:5000/ws", "the websocket endpoint of the server")
var name = flag.String("name", "", "your display name (asked for when empty)")

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	} else {
		printTitle()
	}

	stdin := bufio.NewReader(os.Stdin)
	if *name == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		answer, err := getInput(stdin, "Name (blank for a random one)")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		*name = answer
	}

	endpoint, err := url.Parse(*server)
	if err != nil {
		logrus.WithError(err).Fatal("invalid server address")
	}

	if *name != "" {
		q := endpoint.Query()
		q.Set("name", *name)
		endpoint.RawQuery = q.Encode()
	}

	conn, _, err := websocket.DefaultDialer.Dial(endpoint.String(), nil)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect")
	}
	defer conn.Close()

	go sendLoop(conn, stdin)

	for {
		var msg playable.Response
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return
			}

			pterm.Error.Println("connection lost:", err)
			os.Exit(1)
		}

		render(&msg)
	}
}

func printTitle() {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Flip ", pterm.FgLightCyan.ToStyle()),
		putils.LettersFromStringWithStyle("7", pterm.FgRed.ToStyle()),
	).Srender()
	if err != nil {
		return
	}

	pterm.Print(title)
	pterm.Println()
}

// sendLoop forwards every line typed by the user to the server
func sendLoop(conn *websocket.Conn, stdin *bufio.Reader) {
	for {
		line, err := stdin.ReadString('\n')
		if err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}

		if err := conn.WriteJSON(payloadFromLine(line)); err != nil {
			logrus.WithError(err).Error("could not send message")
			return
		}
	}
}

// payloadFromLine turns typed text into a payload the server understands
func payloadFromLine(line string) *playable.PayloadIn {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "start":
		return &playable.PayloadIn{Action: "start"}
	case "y", "yes", "o", "oui", "d", "draw":
		return &playable.PayloadIn{Action: "draw"}
	case "n", "no", "non", "s", "stop":
		return &playable.PayloadIn{Action: "stop"}
	}

	return &playable.PayloadIn{Action: "say", Subject: line}
}

func render(msg *playable.Response) {
	switch msg.Key {
	case "prompt":
		pterm.Print(pterm.LightYellow("> " + msg.Value + " "))
	case "hud":
		pterm.DefaultBox.WithTitle(pterm.LightCyan("|YOUR HAND|")).WithTitleTopCenter().Println(msg.Value)
	case "roundStart", "roundEnd":
		pterm.DefaultSection.Println(msg.Value)
	case "standings":
		pterm.DefaultBox.WithTitle(pterm.LightGreen("|STANDINGS|")).WithTitleTopCenter().Println(msg.Value)
	case "gameOver", "flip7", "saved":
		pterm.Success.Println(msg.Value)
	case "bust", "freeze", "disconnected", "timeout":
		pterm.Warning.Println(msg.Value)
	case "error":
		pterm.Error.Println(msg.Value)
	case "welcome", "host", "gameStarting", "gameEnded":
		pterm.Info.Println(msg.Value)
	case "history":
		pterm.Println(pterm.Gray(msg.Value))
	default:
		pterm.Println(msg.Value)
	}
}

func getInput(reader *bufio.Reader, question string) (string, error) {
	fmt.Printf("%s: ", question)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
