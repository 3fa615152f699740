package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/tokenledger/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`

	Postgres config.PostgresConfig
	Token    tokenConfig
}

// tokenConfig seeds a first deployment. Once the database holds ledger
// state, only the metadata fields matter.
type tokenConfig struct {
	Name         string `env:"TOKEN_NAME"`
	Symbol       string `env:"TOKEN_SYMBOL"`
	Decimals     uint8  `env:"TOKEN_DECIMALS"`
	MetadataURI  string `env:"TOKEN_METADATA_URI"`
	Admin        string `env:"TOKEN_ADMIN_ADDRESS"`
	CampaignGoal uint64 `env:"TOKEN_CAMPAIGN_GOAL"`
}
