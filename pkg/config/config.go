package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Watch   WatchConfig
	Report  ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Title    string // título de ventana/documento, p. ej. "ERP 代账管理系统"
	Locale   string // BCP 47, usado para formatear importes
	LogLevel string
	LogFile  string // vacío: stderr
}

// APIConfig configuración del backend REST.
type APIConfig struct {
	BaseURL  string // http://localhost:8080
	BasePath string // /api
	Timeout  time.Duration
	RetryMax int // 0 = un único intento
	// MaxDownloadBytes tope de un fichero descargado; 0 usa el del cliente.
	MaxDownloadBytes int64
}

// Endpoint devuelve la raíz de la API (BaseURL + BasePath) sin barra final.
func (c APIConfig) Endpoint() string {
	base := strings.TrimRight(c.BaseURL, "/")
	path := "/" + strings.Trim(c.BasePath, "/")
	if path == "/" {
		return base
	}
	return base + path
}

// SessionConfig ubicación del almacén local de sesión (token + usuario).
type SessionConfig struct {
	Path string
}

// WatchConfig opciones del vigilante de la bandeja de importación.
type WatchConfig struct {
	Debounce time.Duration
}

// ReportConfig opciones del informe PDF.
type ReportConfig struct {
	FontPath string // TTF con glifos CJK; vacío = fuente estándar con rótulos latinos
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, SESSION_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "erpctl"),
			Title:    getString(v, "APP_TITLE", "ERP 代账管理系统"),
			Locale:   getString(v, "APP_LOCALE", "zh-CN"),
			LogLevel: getString(v, "LOG_LEVEL", "warn"),
			LogFile:  getString(v, "LOG_FILE", ""),
		},
		API: APIConfig{
			BaseURL:  getString(v, "API_BASE_URL", "http://localhost:8080"),
			BasePath: getString(v, "API_BASE_PATH", "/api"),
			Timeout:  time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 30)) * time.Second,
			RetryMax: getInt(v, "API_RETRY_MAX", 0),

			MaxDownloadBytes: int64(getInt(v, "API_MAX_DOWNLOAD_MB", 256)) << 20,
		},
		Session: SessionConfig{
			Path: getString(v, "SESSION_PATH", defaultSessionPath()),
		},
		Watch: WatchConfig{
			Debounce: time.Duration(getInt(v, "WATCH_DEBOUNCE_MS", 300)) * time.Millisecond,
		},
		Report: ReportConfig{
			FontPath: getString(v, "REPORT_FONT", ""),
		},
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".erp-admin", "session.json")
	}
	return filepath.Join(home, ".erp-admin", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
