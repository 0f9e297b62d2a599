package cfg

type Cfg struct {
	// Catalog source configuration
	CatalogURL string
	CacheTTL   int

	// Application configuration
	Port            string
	BaseUrl         string
	DBPath          string
	WorkerCount     int
	RefreshInterval int
	APIAccessKey    string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
