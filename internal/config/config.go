package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DatabaseConfig holds connection settings for the identity store (PostgreSQL).
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// GraphConfig holds credentials and resource identifiers for the remote
// document service (Microsoft Graph).
type GraphConfig struct {
	ClientID      string
	TenantID      string
	ClientSecret  string
	SiteID        string
	DriveID       string
	NewsListID    string
	CalendarID    string
	PartnerListID string
	TimeoutSec    int
}

// AppConfig is the immutable configuration for the whole process.
// It is constructed once at startup and passed into the components that need
// it; handlers never read the environment directly.
type AppConfig struct {
	Port            string
	Database        DatabaseConfig
	Graph           GraphConfig
	CategoryFolders map[string]string
	SyncIntervalSec int
}

// folderEnvPrefix names the per-category folder variables, e.g.
// FOLDER_ID_PERSONALE=abc maps category "personale" to folder "abc".
const folderEnvPrefix = "FOLDER_ID_"

// Load reads configuration from environment variables. A .env file can be
// auto-loaded by importing _ "github.com/joho/godotenv/autoload".
// It returns an error naming every missing required value so the process
// refuses to start instead of failing lazily on the first request.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port: getEnv("PORT", "8000"),
		Database: DatabaseConfig{
			Host:               os.Getenv("DB_HOST"),
			Port:               getEnv("DB_PORT", "5432"),
			User:               os.Getenv("DB_USER"),
			Password:           os.Getenv("DB_PASSWORD"),
			Name:               os.Getenv("DB_NAME"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Graph: GraphConfig{
			ClientID:      os.Getenv("CLIENT_ID"),
			TenantID:      os.Getenv("TENANT_ID"),
			ClientSecret:  os.Getenv("CLIENT_SECRET"),
			SiteID:        os.Getenv("SITE_ID"),
			DriveID:       os.Getenv("DRIVE_ID"),
			NewsListID:    os.Getenv("NEWS_LIST_ID"),
			CalendarID:    os.Getenv("CALENDAR_LIST_ID"),
			PartnerListID: os.Getenv("PARTNER_LIST_ID"),
			TimeoutSec:    getEnvInt("GRAPH_TIMEOUT_SEC", 30),
		},
		CategoryFolders: loadCategoryFolders(os.Environ()),
		SyncIntervalSec: getEnvInt("SYNC_INTERVAL_SEC", 3600),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadCategoryFolders scans the environment for FOLDER_ID_* variables and
// builds the category registry input. Category names are lower-cased.
func loadCategoryFolders(environ []string) map[string]string {
	folders := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, folderEnvPrefix) || value == "" {
			continue
		}
		category := strings.ToLower(strings.TrimPrefix(key, folderEnvPrefix))
		if category == "" {
			continue
		}
		folders[category] = value
	}
	return folders
}

func (c *AppConfig) validate() error {
	var missing []string

	check := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	check("DB_HOST", c.Database.Host)
	check("DB_USER", c.Database.User)
	check("DB_PASSWORD", c.Database.Password)
	check("DB_NAME", c.Database.Name)
	check("CLIENT_ID", c.Graph.ClientID)
	check("TENANT_ID", c.Graph.TenantID)
	check("CLIENT_SECRET", c.Graph.ClientSecret)
	check("SITE_ID", c.Graph.SiteID)
	check("DRIVE_ID", c.Graph.DriveID)
	check("NEWS_LIST_ID", c.Graph.NewsListID)
	check("CALENDAR_LIST_ID", c.Graph.CalendarID)
	check("PARTNER_LIST_ID", c.Graph.PartnerListID)

	if len(c.CategoryFolders) == 0 {
		missing = append(missing, folderEnvPrefix+"* (at least one category)")
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
