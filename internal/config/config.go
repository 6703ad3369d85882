package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultHAIToken is the HAI token on Optimism.
const DefaultHAIToken = "0xf467C7d5a4A9C4687fFc7986aC6aD5A4c81E1404"

// Config holds the settings shared by every command.
type Config struct {
	RPCURL           string
	SubgraphURL      string
	SubgraphTimeout  time.Duration
	HAIToken         string
	CollateralTokens map[string]string
	Contracts        map[string]string
	WalletAddress    string
	ProxyAddress     string
	AuctionLimit     int
	MaxRetries       int
	RetryBackoff     time.Duration
	LogLevel         string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return Config{}, err
	}
	return common(v), nil
}

// newViper applies the shared defaults, then defaults, then binds flags and
// reads the config file. A missing default config file is not an error.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("VAULTSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("subgraph-timeout", 15*time.Second)
	v.SetDefault("hai-token", DefaultHAIToken)
	v.SetDefault("auction-limit", 500)
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func common(v *viper.Viper) Config {
	return Config{
		RPCURL:           v.GetString("rpc"),
		SubgraphURL:      v.GetString("subgraph"),
		SubgraphTimeout:  v.GetDuration("subgraph-timeout"),
		HAIToken:         v.GetString("hai-token"),
		CollateralTokens: getStringMap(v, "collateral-tokens"),
		Contracts:        getStringMap(v, "contracts"),
		WalletAddress:    v.GetString("wallet"),
		ProxyAddress:     v.GetString("proxy"),
		AuctionLimit:     v.GetInt("auction-limit"),
		MaxRetries:       v.GetInt("max-retries"),
		RetryBackoff:     v.GetDuration("retry-backoff"),
		LogLevel:         v.GetString("log-level"),
	}
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

// getStringMap reads key=value pairs from a comma separated string or a
// list. Config file maps are accepted too, but viper lowercases their keys,
// so the list form is needed for case sensitive names.
func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	case string:
		return parseStringMap(splitAndClean(typed))
	case []string, []interface{}:
		return parseStringMap(getStringSlice(v, key))
	default:
		return map[string]string{}
	}
}

func parseStringMap(pairs []string) map[string]string {
	out := make(map[string]string)
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
