// Package config loads cryptocli's runtime knobs from environment /
// .env file, the same way the teacher's bot loaded its own config.
package config

import (
	"log"
	"math/big"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds cryptocli's demo-domain defaults: the chain ID and
// verifying-contract address baked into the eip712-hash subcommand's
// example domain when the caller's JSON document omits them.
type Config struct {
	ChainID           *big.Int
	VerifyingContract string
	LogLevel          string
}

// Load reads .env (if present) then overrides from OS env vars,
// mirroring the original config.go's .env-then-env-var precedence.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using OS environment")
	}

	return Config{
		ChainID:           big.NewInt(getEnvInt64("CRYPTOCLI_CHAIN_ID", 1)),
		VerifyingContract: getEnv("CRYPTOCLI_VERIFYING_CONTRACT", "0x0000000000000000000000000000000000000000"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}
