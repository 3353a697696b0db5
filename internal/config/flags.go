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
//	-peer-address hub address in format [host]:[port]
//	-d database DSN
//	-instance-id stable instance identifier
//	-key-path signing key seed file path
//	-cert-chain certificate chain JSON file path
//	-root-scope partition scope of the root certificate minted at hub start
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval background sync interval (e.g., "1m")
//	-sync-filters comma-separated partition prefixes to replicate
func ParseFlags() *StructuredConfig {
	var serverAddress, peerAddress NetAddress
	var databaseDSN string
	var instanceID string
	var keyPath string
	var certChainPath string
	var rootScope string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var syncFilters string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&peerAddress, "peer-address", "Hub net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&instanceID, "instance-id", "", "Stable instance identifier")
	flag.StringVar(&keyPath, "key-path", "", "Signing key seed file path")
	flag.StringVar(&certChainPath, "cert-chain", "", "Certificate chain JSON file path")
	flag.StringVar(&rootScope, "root-scope", "", "Partition scope of the root certificate minted at hub start")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 1m)")
	flag.StringVar(&syncFilters, "sync-filters", "", "Comma-separated partition prefixes to replicate")

	flag.Parse()

	var filters []string
	if syncFilters != "" {
		filters = strings.Split(syncFilters, ",")
	}

	return &StructuredConfig{
		App: App{
			InstanceID:    instanceID,
			KeyPath:       keyPath,
			CertChainPath: certChainPath,
			RootScope:     rootScope,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    peerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			SyncFilters:  filters,
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
