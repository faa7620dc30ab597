package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"os"
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

// commandLineArgs returns the process arguments without the program name.
func commandLineArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// parseFlags parses the edge service flags from args.
//
// Flags:
//
//	-a admin API address in format [host]:[port]
//	-l local SQLite DSN
//	-d shared store DSN
//	-driver shared store driver (postgres or mysql)
//	-c/-config JSON or YAML config file path
//	-journal-mode offline or always
//	-sync-interval sync worker interval (e.g., "5m")
//	-accounts comma separated account identifiers
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key admin API body hash key
//	-checksum-key journal checksum key
//	-offline start with the router offline
//	-lease guard sync cycles with a distributed lease
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("edge", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var localDSN, sharedDSN, driver string
	var configPath string
	var journalMode string
	var syncInterval, requestTimeout time.Duration
	var accounts string
	var hashKey, checksumKey string
	var startOffline, lease bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&localDSN, "l", "", "Local SQLite DSN")
	fs.StringVar(&sharedDSN, "d", "", "Shared store DSN")
	fs.StringVar(&driver, "driver", "", "Shared store driver (postgres, mysql)")
	fs.StringVar(&configPath, "c", "", "Config file path (JSON or YAML)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&journalMode, "journal-mode", "", "Journal mode (offline, always)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync interval (e.g., 5m)")
	fs.StringVar(&accounts, "accounts", "", "Comma separated account IDs")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Admin API hash key")
	fs.StringVar(&checksumKey, "checksum-key", "", "Journal checksum key")
	fs.BoolVar(&startOffline, "offline", false, "Start offline")
	fs.BoolVar(&lease, "lease", false, "Use a distributed sync lease")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var accountList []string
	for _, a := range strings.Split(accounts, ",") {
		if a = strings.TrimSpace(a); a != "" {
			accountList = append(accountList, a)
		}
	}

	return &StructuredConfig{
		App: App{
			HashKey:     hashKey,
			ChecksumKey: checksumKey,
		},
		Storage: Storage{
			Local: LocalDB{DSN: localDSN},
			Shared: SharedDB{
				Driver: driver,
				DSN:    sharedDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			Accounts:     accountList,
		},
		Replication: Replication{
			JournalMode:      journalMode,
			DistributedLease: lease,
			StartOffline:     startOffline,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port is set.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
