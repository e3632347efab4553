package env

import (
	"os"
)

const (
	KeyURL     = "USERPORTAL_URL"
	KeyToken   = "USERPORTAL_TOKEN"
	KeyTimeout = "USERPORTAL_TIMEOUT"
	KeyListen  = "USERPORTAL_LISTEN"
)

// Keys lists every variable userportal reads.
var Keys = []string{KeyURL, KeyToken, KeyTimeout, KeyListen}

// Settings holds the recognized variables that were set.
type Settings map[string]string

// Lookup is satisfied by os.LookupEnv.
type Lookup func(key string) (string, bool)

// Load collects Settings from dotenvPath (optional) and the process
// environment. A missing dotenvPath is an error only when one was given.
func Load(dotenvPath string) (Settings, error) {
	var file map[string]string
	if dotenvPath != "" {
		var err error
		file, err = LoadDotEnv(dotenvPath)
		if err != nil {
			return nil, err
		}
	}
	return Collect(file, os.LookupEnv), nil
}

// Collect merges recognized keys from file and lookup, lookup winning.
// Empty values are ignored.
func Collect(file map[string]string, lookup Lookup) Settings {
	s := make(Settings)
	for _, k := range Keys {
		if v := file[k]; v != "" {
			s[k] = v
		}
		if lookup != nil {
			if v, ok := lookup(k); ok && v != "" {
				s[k] = v
			}
		}
	}
	return s
}
