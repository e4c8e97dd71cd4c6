package runner

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/gosom/cheap-eats-nyc/tlmt"
	"github.com/gosom/cheap-eats-nyc/tlmt/gonoop"
	"github.com/gosom/cheap-eats-nyc/tlmt/goposthog"
)

const (
	RunModeSearch = iota + 1
	RunModeWeb
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

var (
	ErrInvalidRunMode = errors.New("invalid run mode")
)

type Runner interface {
	Run(context.Context) error
	Close(context.Context) error
}

type Config struct {
	Addr          string
	Location      string
	Cuisine       string
	MaxPrice      float64
	RadiusMiles   float64
	Limit         int
	Sources       []string
	ResultsFile   string
	JSON          bool
	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	LLMAPIKey     string
	Timeout       time.Duration
	Debug         bool
	RunMode       int
}

func ParseConfig() *Config {
	cfg := Config{}

	var sources string

	flag.StringVar(&cfg.Addr, "addr", ":8080", "address to listen on for web server")
	flag.StringVar(&cfg.Location, "location", "", "run a one-shot search for this NYC location (e.g., 'chinatown' or '10002')")
	flag.StringVar(&cfg.Cuisine, "cuisine", "", "filter results by cuisine (e.g., 'pizza')")
	flag.Float64Var(&cfg.MaxPrice, "max-price", 0, "maximum average meal price in dollars [default: 20]")
	flag.Float64Var(&cfg.RadiusMiles, "radius", 0, "search radius in miles [default: 2]")
	flag.IntVar(&cfg.Limit, "limit", 0, "maximum number of results [default: 40]")
	flag.StringVar(&sources, "source", "opendata", "comma separated data sources: opendata, llm, mock")
	flag.StringVar(&cfg.ResultsFile, "results", "stdout", "path to the results file [default: stdout]")
	flag.BoolVar(&cfg.JSON, "json", false, "produce JSON output instead of CSV")
	flag.StringVar(&cfg.CacheBackend, "cache", CacheMemory, "cache backend: memory or redis")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", "", "redis address (host:port) when -cache=redis")
	flag.DurationVar(&cfg.Timeout, "timeout", 0, "per-search timeout (e.g., '12s')")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	flag.Parse()

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.LLMAPIKey = os.Getenv("PERPLEXITY_API_KEY")

	for _, src := range strings.Split(sources, ",") {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}

		cfg.Sources = append(cfg.Sources, src)
	}

	if len(cfg.Sources) == 0 {
		panic("at least one data source must be configured")
	}

	for _, src := range cfg.Sources {
		switch src {
		case "opendata", "llm", "mock":
		default:
			panic("unknown source: " + src)
		}

		if src == "llm" && cfg.LLMAPIKey == "" {
			panic("PERPLEXITY_API_KEY must be set when using the llm source")
		}
	}

	switch cfg.CacheBackend {
	case CacheMemory, CacheRedis:
	default:
		panic("cache must be memory or redis")
	}

	if cfg.CacheBackend == CacheRedis && cfg.RedisAddr == "" {
		panic("redis-addr must be provided when using the redis cache")
	}

	if cfg.MaxPrice < 0 {
		panic("max-price must not be negative")
	}

	if cfg.RadiusMiles < 0 || cfg.RadiusMiles > 50 {
		panic("radius must be between 0 and 50 miles")
	}

	if cfg.Location != "" {
		cfg.RunMode = RunModeSearch
	} else {
		cfg.RunMode = RunModeWeb
	}

	return &cfg
}

var (
	telemetryOnce sync.Once
	telemetry     tlmt.Telemetry
)

func Telemetry() tlmt.Telemetry {
	telemetryOnce.Do(func() {
		disableTel := func() bool {
			return os.Getenv("DISABLE_TELEMETRY") == "1"
		}()

		if disableTel {
			telemetry = gonoop.New()

			return
		}

		val, err := goposthog.New("phc_CHYBGEd1eJZzDE7ZWhyiSFuXa9KMLRnaYN47aoIAY2A", "https://eu.i.posthog.com")
		if err != nil || val == nil {
			telemetry = gonoop.New()

			return
		}

		telemetry = val
	})

	return telemetry
}

func wrapText(text string, width int) []string {
	var lines []string

	currentLine := ""
	currentWidth := 0

	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			lines = append(lines, currentLine)
			currentLine = string(r)
			currentWidth = runeWidth
		} else {
			currentLine += string(r)
			currentWidth += runeWidth
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func banner(messages []string, width int) string {
	if width <= 0 {
		var err error

		width, _, err = term.GetSize(0)
		if err != nil {
			width = 80
		}
	}

	if width < 20 {
		width = 20
	}

	contentWidth := width - 4

	var wrappedLines []string
	for _, message := range messages {
		wrappedLines = append(wrappedLines, wrapText(message, contentWidth)...)
	}

	var builder strings.Builder

	builder.WriteString("╔" + strings.Repeat("═", width-2) + "╗\n")

	for _, line := range wrappedLines {
		lineWidth := runewidth.StringWidth(line)
		paddingRight := contentWidth - lineWidth

		if paddingRight < 0 {
			paddingRight = 0
		}

		builder.WriteString(fmt.Sprintf("║ %s%s ║\n", line, strings.Repeat(" ", paddingRight)))
	}

	builder.WriteString("╚" + strings.Repeat("═", width-2) + "╝\n")

	return builder.String()
}

func Banner() {
	message1 := "🗽 Cheap Eats NYC"
	message2 := "🍕 Budget-friendly restaurants near any New York City neighborhood"

	fmt.Fprintln(os.Stderr, banner([]string{message1, message2}, 0))
}
