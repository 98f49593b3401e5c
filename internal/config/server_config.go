package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
	"github/chapool/dex-wallet/internal/util"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogResponseBody    bool
	LogResponseHeader  bool
	PrettyPrintConsole bool
}

// Storage configures where the session keeps its credential store and kit state.
type Storage struct {
	DataDir string
}

// Wallet mirrors the demo wallet configuration: chain selection, RPC and
// transaction sources and the kit's own log threshold.
type Wallet struct {
	ChainName         string
	ChainsFile        string
	RPCURLs           []string
	TransactionAPIURL string
	TransactionAPIKey string
	WalletID          string
	MinLogLevel       zerolog.Level
	SyncInterval      time.Duration
	Passphrase        string
}

type Metrics struct {
	Enabled bool
}

type Server struct {
	Echo    EchoServer
	Logger  LoggerServer
	Storage Storage
	Wallet  Wallet
	Metrics Metrics
}

var dotEnvOnce sync.Once

// loadDotEnv loads variables from the .env file in the working directory (if any).
// Variables already present in the environment are not overwritten.
func loadDotEnv() {
	dotEnvOnce.Do(func() {
		path := util.GetEnv("DOTENV_FILE", ".env")
		if _, err := os.Stat(path); err != nil {
			return
		}

		if err := gotenv.Load(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to load dotenv file")
		}
	})
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	loadDotEnv()

	dataDir := util.GetEnv("WALLET_DATA_DIR", defaultDataDir())

	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Storage: Storage{
			DataDir: dataDir,
		},
		Wallet: Wallet{
			ChainName:         util.GetEnv("WALLET_CHAIN", "sepolia"),
			ChainsFile:        util.GetEnv("WALLET_CHAINS_FILE", ""),
			RPCURLs:           util.GetEnvAsStringArr("WALLET_RPC_URLS", nil),
			TransactionAPIURL: util.GetEnv("WALLET_TRANSACTION_API_URL", ""),
			TransactionAPIKey: util.GetEnv("WALLET_TRANSACTION_API_KEY", ""),
			WalletID:          util.GetEnv("WALLET_ID", "walletID"),
			MinLogLevel:       util.LogLevelFromString(util.GetEnv("WALLET_MIN_LOG_LEVEL", zerolog.ErrorLevel.String())),
			SyncInterval:      util.GetEnvAsDuration("WALLET_SYNC_INTERVAL", 12*time.Second),
			Passphrase:        util.GetEnv("WALLET_MNEMONIC_PASSPHRASE", ""),
		},
		Metrics: Metrics{
			Enabled: util.GetEnvAsBool("SERVER_METRICS_ENABLED", true),
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dex-wallet"
	}

	return filepath.Join(home, ".dex-wallet")
}
