package config

import (
	"os"
	"strconv"
	"strings"
)

// GoogleConfig holds credentials and record-store coordinates for the
// Google Sheets / Drive collaborators.
type GoogleConfig struct {
	// CredentialsJSON is the raw service-account key. Loaded once here and
	// passed explicitly to each client; nothing reads the env var later.
	CredentialsJSON string
	SpreadsheetID   string
	SheetGID        int
}

// DriveConfig holds the Drive folder IDs used by the archive backend.
type DriveConfig struct {
	LabelsFolderID string
	MergedFolderID string
}

// MinIOConfig holds object storage settings for the S3-compatible archive
// backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MergeConfig holds settings for the external PDF merge service.
// An empty ServiceURL selects the in-process merger.
type MergeConfig struct {
	ServiceURL string
}

// LabelConfig holds the remote assets embedded into every label.
type LabelConfig struct {
	LogoURL        string
	BarcodeBaseURL string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port           string
	AllowedOrigins []string
	// ArchiveBackend selects where rendered documents live: "drive" or "s3".
	ArchiveBackend string
	Google         GoogleConfig
	Drive          DriveConfig
	MinIO          MinIOConfig
	Merge          MergeConfig
	Label          LabelConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		ArchiveBackend: getEnv("ARCHIVE_BACKEND", "drive"),
		Google: GoogleConfig{
			CredentialsJSON: getEnv("GOOGLE_SERVICE_ACCOUNT", ""),
			SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
			SheetGID:        getEnvInt("SHEET_GID", 0),
		},
		Drive: DriveConfig{
			LabelsFolderID: getEnv("DRIVE_LABELS_FOLDER_ID", ""),
			MergedFolderID: getEnv("DRIVE_MERGED_FOLDER_ID", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Merge: MergeConfig{
			ServiceURL: getEnv("MERGE_SERVICE_URL", ""),
		},
		Label: LabelConfig{
			LogoURL:        getEnv("LABEL_LOGO_URL", ""),
			BarcodeBaseURL: getEnv("BARCODE_BASE_URL", "https://quickchart.io/barcode"),
		},
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
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
