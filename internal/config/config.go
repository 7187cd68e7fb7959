package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Modeling         Modeling         `mapstructure:",squash"`
	ModelMaintenance ModelMaintenance `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN        string `mapstructure:"-"`
	Driver     string `mapstructure:"database_driver"`
	Password   string `mapstructure:"database_password"`
	URL        string `mapstructure:"database_url"`
	User       string `mapstructure:"database_user"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Modeling struct {
	// Intervalo sem edições antes de gravar as alterações pendentes; zero grava na hora
	DebounceInterval time.Duration `mapstructure:"debounce_interval"`
	SeedOnFirstLoad  bool          `mapstructure:"seed_on_first_load"`
	SessionIdleTTL   time.Duration `mapstructure:"session_idle_ttl"`
}

type ModelMaintenance struct {
	CronSchedule     string `mapstructure:"model_maintenance_cron"`
	Enabled          bool   `mapstructure:"model_maintenance_enabled"`
	ReconcileEnabled bool   `mapstructure:"model_reconcile_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", "localhost:5432/business_model?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("SQLITE_PATH", "business_model.db")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("DEBOUNCE_INTERVAL", "1s")
	viper.SetDefault("SEED_ON_FIRST_LOAD", true)
	viper.SetDefault("SESSION_IDLE_TTL", "30m")

	viper.SetDefault("MODEL_MAINTENANCE_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("MODEL_MAINTENANCE_ENABLED", true)
	viper.SetDefault("MODEL_RECONCILE_ENABLED", false) // Recalcular derivados gravados de todos os usuários

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// Validate rejeita combinações que impediriam a aplicação de subir
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER inválido: %q (use %q ou %q)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if c.Modeling.DebounceInterval < 0 {
		return fmt.Errorf("DEBOUNCE_INTERVAL não pode ser negativo: %s", c.Modeling.DebounceInterval)
	}

	return nil
}

// BuildDSN monta a string de conexão para o driver configurado
func BuildDSN(db Database) string {
	if db.Driver == DriverSQLite {
		return db.SQLitePath
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
