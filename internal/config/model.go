// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                      – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `JOURNAL_`-prefixed environment overrides – highest precedence.
//
// The legacy deployment configured everything through bare env vars
// (MONGO_URI, CLIENT_URL, PORT); the loader still honors those names as
// fallbacks so existing deployment manifests keep working.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"` — Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ClientURL  string `koanf:"client_url"  validate:"required,url"`
}

//
// Database section
//

// Database holds the MySQL DSN.  The DSN needs parseTime=true so DATETIME
// columns scan into time.Time.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

//
// Geo section
//

// Geo points at the MaxMind Country database.  The path is optional: a
// missing file degrades country resolution to "Unknown" instead of
// failing boot.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Lookup section
//

// Lookup configures the public-IP fallback endpoint.
type Lookup struct {
	Endpoint string        `koanf:"endpoint" validate:"required,url"`
	Timeout  time.Duration `koanf:"timeout"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime — never set in YAML or env.  The loader
// discovers `Root` so later code can build absolute file paths.
type Paths struct {
	Root string // JOURNAL_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().  Callers keep the
// pointer they receive at boot; nothing mutates it afterwards.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Geo      Geo      `koanf:"geo"`
	Lookup   Lookup   `koanf:"lookup"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
