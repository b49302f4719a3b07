package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses the pool lifetime duration
)

// DefaultJWTSecret is the insecure built-in fallback used when JWT_SECRET is
// unset. It exists so the app runs out of the box during development; the
// server refuses to start with it when APP_ENV=prod.
const DefaultJWTSecret = "farmsync-dev-secret-change-in-production"

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Everything is read once at startup and treated
// as read-only afterwards; handlers receive it by value.
type Config struct {
    Env            string        // application environment (e.g. "dev", "prod")
    Port           string        // HTTP port to listen on
    DBUser         string        // database username
    DBPass         string        // database password (optional)
    DBHost         string        // database host address
    DBPort         string        // database port number
    DBName         string        // database name
    DBMaxOpen      int           // max open connections in the pool
    DBMaxIdle      int           // max idle connections kept in the pool
    DBConnLifetime time.Duration // recycle connections older than this
    JWTSecret      string        // secret used to sign session tokens
    TokenTTLHours  int           // session token time-to-live in hours
    BcryptCost     int           // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config. Database variables are required and enforced by must(); missing
// values cause the program to exit with a fatal log message. The signing
// secret falls back to DefaultJWTSecret with a loud warning, except in prod
// where the fallback is refused outright.
func Load() Config {
    cfg := Config{
        Env:            getenvDefault("APP_ENV", "dev"),
        Port:           getenvDefault("APP_PORT", "8080"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        DBMaxOpen:      envInt("DB_MAX_OPEN_CONNS", 25),
        DBMaxIdle:      envInt("DB_MAX_IDLE_CONNS", 25),
        DBConnLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
        JWTSecret:      os.Getenv("JWT_SECRET"),
        TokenTTLHours:  envInt("TOKEN_TTL_HOURS", 24),
        BcryptCost:     envInt("BCRYPT_COST", 10),
    }
    if cfg.JWTSecret == "" {
        if cfg.Env == "prod" {
            log.Fatal("JWT_SECRET must be set when APP_ENV=prod")
        }
        log.Printf("WARNING: JWT_SECRET not set, using insecure built-in default; do not deploy like this")
        cfg.JWTSecret = DefaultJWTSecret
    }
    if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
        log.Fatalf("BCRYPT_COST out of range: %d", cfg.BcryptCost)
    }
    if cfg.DBMaxOpen < 1 || cfg.DBMaxIdle < 0 {
        log.Fatalf("invalid DB pool settings: open=%d idle=%d", cfg.DBMaxOpen, cfg.DBMaxIdle)
    }
    return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

func getenvDefault(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, v)
    }
    return n
}
