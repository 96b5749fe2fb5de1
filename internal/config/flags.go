package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres connection string or sqlite file path)
//	-storage storage backend name (memory, postgres, sqlite, redis)
//	-redis-address redis server address in format [host]:[port]
//	-c/-config json file path with configs
//	-session-window sliding session window (e.g., "168h")
//	-xp-per-level experience needed per level
//	-xp-per-sec experience gained per second
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var storageBackend string
	var redisAddress string
	var jsonConfigPath string
	var sessionWindow time.Duration
	var xpPerLevel float64
	var xpPerSec float64
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&storageBackend, "storage", "", "Storage backend (memory, postgres, sqlite, redis)")
	flag.StringVar(&redisAddress, "redis-address", "", "Redis address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&sessionWindow, "session-window", 0, "Sliding session window (e.g., 168h)")
	flag.Float64Var(&xpPerLevel, "xp-per-level", 0, "Experience needed per level")
	flag.Float64Var(&xpPerSec, "xp-per-sec", 0, "Experience gained per second")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			SessionWindow: sessionWindow,
			XPPerLevel:    xpPerLevel,
			XPPerSec:      xpPerSec,
		},
		Storage: Storage{
			Backend: storageBackend,
			DB: DB{
				DSN: databaseDSN,
			},
			Redis: Redis{
				Addr: redisAddress,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
