package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/pencroft/musepad/muse"
	"github.com/pencroft/musepad/notes"
	"github.com/pencroft/musepad/slots"
	"github.com/pencroft/musepad/storage"
)

// Flags represents the command-line flags that are passed to musepad.
type Flags struct {
	Dir   string
	Debug bool
}

var (
	flags  Flags
	logger = logrus.New()
)

// parseFlags parses command-line flags.
func parseFlags() Flags {
	dir := flag.String("dir", "", "Directory for musepad state and logs (defaults to ~/.musepad)")
	enableDebug := flag.Bool("debug", false, "Enable debugging mode to show more verbose logs")

	flag.Parse()

	return Flags{
		Dir:   *dir,
		Debug: *enableDebug,
	}
}

func main() {
	flags = parseFlags()

	// Load environment variables from a .env file, if one is present.
	_ = godotenv.Load()

	dir := flags.Dir
	if dir == "" {
		var err error
		dir, err = storage.DefaultDir()
		if err != nil {
			color.Red("Failed to locate the home directory: %v", err)
			os.Exit(1)
		}
	}

	store, err := storage.New(dir)
	if err != nil {
		color.Red("Failed to open the state directory %s: %v", dir, err)
		os.Exit(1)
	}

	logFile, debugLogFile, err := setupLogger(logger, store.Dir())
	if err != nil {
		color.Red("Failed to set up loggers: %v", err)
		os.Exit(1)
	}
	defer closeLogFiles(logFile, debugLogFile)

	// Read the credential once at startup; the environment seeds an empty
	// store.
	apiKey, err := store.Load(storage.KeyAPIKey)
	if err != nil {
		logger.Errorf("failed to load the API key: %v", err)
	}
	if apiKey == "" {
		apiKey = apiKeyFromEnv()
		if apiKey != "" {
			if err := store.Save(storage.KeyAPIKey, apiKey); err != nil {
				logger.Errorf("failed to save the API key: %v", err)
			}
		}
	}

	// Read the persisted notes document once at startup. Parse is total, so
	// a damaged value still loads as text.
	markup, err := store.Load(storage.KeyNotes)
	if err != nil {
		logger.Errorf("failed to load the notes document: %v", err)
	}
	doc := notes.Parse(markup)

	engine, err := slots.New(slots.DefaultWords, slots.DefaultConstraints, nil)
	if err != nil {
		color.Red("Failed to build the prompt slots: %v", err)
		os.Exit(1)
	}

	gen := muse.NewClient(apiKey)

	p := tea.NewProgram(initialModel(engine, doc, store, gen, apiKey), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		color.Red("Error running musepad: %v", err)
		os.Exit(1)
	}
}

// apiKeyFromEnv checks the musepad-specific variable first, then the
// conventional one.
func apiKeyFromEnv() string {
	if key := os.Getenv("MUSEPAD_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}
