package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./gradstats.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port       string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DataFile   string `long:"data-file" env:"DATA_FILE" default:"./data/llm_extend_applicant_data.json" description:"JSON or JSONL file with raw applicant records"`
	ReportFile string `long:"report-file" env:"REPORT_FILE" default:"./report.yaml" description:"YAML report configuration (optional, defaults apply when missing)"`
	Scrape     bool   `long:"scrape" env:"SCRAPE" description:"Pull records from GradCafe instead of the data file"`
	MaxPages   int    `long:"max-pages" env:"MAX_PAGES" default:"5" description:"Maximum number of survey pages to scrape"`

	// Scraper metadata
	UserAgent   string `long:"user-agent" env:"USER_AGENT" default:"GradStats/1.0" description:"User agent string for HTTP requests"`
	ScrapeDelay int    `long:"scrape-delay" env:"SCRAPE_DELAY" default:"1" description:"Delay between scrape requests in seconds"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:      raw.DBPath,
		Port:        raw.Port,
		DataFile:    raw.DataFile,
		ReportFile:  raw.ReportFile,
		Scrape:      raw.Scrape,
		MaxPages:    raw.MaxPages,
		UserAgent:   raw.UserAgent,
		ScrapeDelay: raw.ScrapeDelay,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
