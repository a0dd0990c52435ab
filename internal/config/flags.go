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
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-assets-dir asset file store directory
//	-base-url authority base URL for the client adapter
//	-c/-config json file path with configs
//	-url-sign-key signed URL HMAC key
//	-url-ttl signed URL lifetime (e.g., "15m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-asset-dir client asset cache directory
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var assetsDir string
	var baseURL string
	var jsonConfigPath string
	var urlSignKey string
	var urlTTL time.Duration
	var requestTimeout time.Duration
	var syncAssetDir string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&assetsDir, "assets-dir", "", "Asset file store directory")
	flag.StringVar(&baseURL, "base-url", "", "Authority base URL")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&urlSignKey, "url-sign-key", "", "Signed URL HMAC key")
	flag.DurationVar(&urlTTL, "url-ttl", 0, "Signed URL lifetime (e.g., 15m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&syncAssetDir, "sync-asset-dir", "", "Client asset cache directory")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			URLSignKey: urlSignKey,
			URLTTL:     urlTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Assets: Assets{
				Dir: assetsDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			AssetDir: syncAssetDir,
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

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
