package chain

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/util"
)

//go:embed chains.toml
var builtinChains []byte

type registryFile struct {
	Chains []Chain `toml:"chain"`
}

// Registry holds the known chain presets keyed by name.
type Registry struct {
	chains map[string]Chain
}

// DefaultRegistry returns the embedded chain presets.
func DefaultRegistry() (*Registry, error) {
	return ParseRegistry(builtinChains)
}

// LoadRegistry reads chain presets from a TOML file and layers them over the
// embedded defaults.
func LoadRegistry(path string) (*Registry, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return registry, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read chains file %s", path)
	}

	override, err := ParseRegistry(data)
	if err != nil {
		return nil, err
	}

	for name, c := range override.chains {
		registry.chains[name] = c
	}

	return registry, nil
}

// ParseRegistry decodes TOML chain presets.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, errors.Wrap(err, "failed to decode chains")
	}

	registry := &Registry{chains: make(map[string]Chain, len(file.Chains))}
	for _, c := range file.Chains {
		if c.Name == "" || c.ID == 0 {
			return nil, errors.Errorf("chain entry needs name and id: %+v", c)
		}
		registry.chains[strings.ToLower(c.Name)] = c
	}

	return registry, nil
}

// Lookup returns the chain registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (Chain, error) {
	c, ok := r.chains[strings.ToLower(name)]
	if !ok {
		return Chain{}, errors.Wrap(ErrUnknownChain, name)
	}

	return c, nil
}

// Chains returns all chains sorted by chain ID.
func (r *Registry) Chains() []Chain {
	result := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result
}

// ParseRPCURLs 解析 RPC URL（支持多个，逗号分隔）
func ParseRPCURLs(rpcURL string) []string {
	if rpcURL == "" {
		return nil
	}

	return util.SplitAndTrim(rpcURL, ",")
}

// ConfigurationFromWallet resolves the wallet config into a kit configuration.
// Explicit RPC URLs and transaction API settings win over the chain preset.
func ConfigurationFromWallet(cfg config.Wallet, registry *Registry) (Configuration, error) {
	c, err := registry.Lookup(cfg.ChainName)
	if err != nil {
		return Configuration{}, err
	}

	rpcURLs := c.RPCURLs
	if len(cfg.RPCURLs) > 0 {
		rpcURLs = cfg.RPCURLs
	}
	if len(rpcURLs) == 0 {
		return Configuration{}, errors.Errorf("no RPC URL configured for chain %s", c.Name)
	}

	apiURL := c.TransactionAPIURL
	if cfg.TransactionAPIURL != "" {
		apiURL = cfg.TransactionAPIURL
	}

	return Configuration{
		Chain:     c,
		RPCSource: RPCSource{URLs: rpcURLs},
		TransactionSource: TransactionSource{
			Name:   "etherscan",
			APIURL: apiURL,
			APIKey: cfg.TransactionAPIKey,
		},
		WalletID:    cfg.WalletID,
		MinLogLevel: cfg.MinLogLevel,
	}, nil
}
