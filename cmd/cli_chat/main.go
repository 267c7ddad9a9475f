package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"havenchat/internal/assist"
	"havenchat/internal/config"
	"havenchat/internal/domain"
	"havenchat/internal/service"
)

const crisisNoticeText = "It sounds like you might be going through something really hard. " +
	"If you are in immediate danger, please contact your local emergency services " +
	"or someone you trust right now."

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	transport := assist.NewHTTPClient(
		cfg.AssistantBaseURL,
		cfg.AssistantAPIKey,
		time.Duration(cfg.AssistantTimeoutSeconds)*time.Second,
		zap.NewStdLog(logger),
	)
	engine := service.NewSessionEngine(transport, logger)

	fmt.Println("===== havenchat =====")
	fmt.Println("This chat relays what you write to a remote assistant service.")
	fmt.Print("Do you consent to that? [y/N]: ")
	answer, _ := reader.ReadString('\n')
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		engine.SetConsent(true)
	} else {
		fmt.Println("You can grant consent later with /consent.")
	}

	fmt.Print("Your name (optional): ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name != "" {
		engine.UpdateSettings(nil, &name)
	}

	printGreeting(engine)
	fmt.Println("Commands: /tone <compassionate|practical|curious>, /name <name>, /consent, /export, /clear, /dismiss, /exit")

	for {
		fmt.Print("You > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(engine, reader, line); quit {
				return
			}
			continue
		}

		snap, err := engine.Submit(ctx, line)
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			continue
		case errors.Is(err, service.ErrConsentRequired):
			fmt.Println("Consent is required before chatting. Use /consent.")
			continue
		case err != nil:
			fmt.Printf("error: %v\n", err)
			continue
		}

		if len(snap.Messages) > 0 {
			lastTurn := snap.Messages[len(snap.Messages)-1]
			fmt.Printf("Assistant > %s\n", lastTurn.Text)
		}
		if snap.LastError != "" {
			fmt.Printf("(notice: %s)\n", snap.LastError)
		}
		if snap.CrisisFlagActive {
			fmt.Println()
			fmt.Println(crisisNoticeText)
			fmt.Println("(dismiss this notice with /dismiss)")
		}
	}
}

func printGreeting(engine *service.SessionEngine) {
	for _, t := range engine.Messages() {
		if t.Role == domain.RoleAssistant {
			fmt.Printf("Assistant > %s\n", t.Text)
		}
	}
}

// runCommand ejecuta un comando local; devuelve true si hay que salir.
func runCommand(engine *service.SessionEngine, reader *bufio.Reader, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "/exit", "/quit":
		fmt.Println("Take care.")
		return true
	case "/consent":
		engine.SetConsent(true)
		fmt.Println("Consent granted.")
	case "/tone":
		tone, err := domain.ParseTone(arg)
		if err != nil {
			fmt.Println("Valid tones: compassionate, practical, curious.")
			return false
		}
		engine.UpdateSettings(&tone, nil)
		fmt.Printf("Tone set to %s.\n", tone)
	case "/name":
		if arg == "" {
			fmt.Println("Usage: /name <name>")
			return false
		}
		engine.UpdateSettings(nil, &arg)
		fmt.Printf("Name set to %s.\n", arg)
	case "/export":
		filename := service.TranscriptFilename(time.Now())
		if err := os.WriteFile(filename, []byte(engine.ExportTranscript()), 0o644); err != nil {
			fmt.Printf("error writing transcript: %v\n", err)
			return false
		}
		fmt.Printf("Transcript written to %s\n", filename)
	case "/clear":
		fmt.Print("Clear the conversation? [y/N]: ")
		answer, _ := reader.ReadString('\n')
		if strings.EqualFold(strings.TrimSpace(answer), "y") {
			engine.Clear()
			printGreeting(engine)
		}
	case "/dismiss":
		engine.DismissCrisisFlag()
		fmt.Println("Notice dismissed.")
	default:
		fmt.Println("Unknown command.")
	}
	return false
}
