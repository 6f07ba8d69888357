package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port       string
	DataFile   string
	ReportFile string
	Scrape     bool
	MaxPages   int

	// Scraper metadata
	UserAgent   string
	ScrapeDelay int

	Debug   bool
	Version string
}
