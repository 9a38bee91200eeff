// Package rewrite applies address and port translation rules to framed
// packets and repairs the affected checksum fields in place.
package rewrite

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/LineVall/linevall-frameworks-libs-net/pkg/netutil"
)

// RuleSpec is one entry of the rules file: a rule type plus its raw
// configuration map.
type RuleSpec struct {
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:"config"`
}

// rulesFile is the top-level structure of a YAML rules file.
type rulesFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// addressMapConfig is the typed config of an address_map rule.
type addressMapConfig struct {
	Map map[string]string `mapstructure:"map"`
}

// portMapConfig is the typed config of a port_map rule. YAML integer keys
// arrive as strings in the raw config map.
type portMapConfig struct {
	Map map[string]int `mapstructure:"map"`
}

// LoadRules reads and compiles a YAML rules file.
func LoadRules(path string) (*Rewriter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	rw, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return rw, nil
}

// ParseRules compiles rules from YAML bytes.
func ParseRules(data []byte) (*Rewriter, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rules file contains no rules")
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		rule, err := compileRule(spec)
		if err != nil {
			return nil, fmt.Errorf("rule[%d] (%s): %w", i, spec.Type, err)
		}
		rules = append(rules, rule)
	}
	return &Rewriter{rules: rules}, nil
}

func compileRule(spec RuleSpec) (Rule, error) {
	switch spec.Type {
	case "address_map":
		var cfg addressMapConfig
		if err := mapstructure.Decode(spec.Config, &cfg); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return compileAddressMap(cfg)
	case "port_map":
		var cfg portMapConfig
		if err := mapstructure.WeakDecode(spec.Config, &cfg); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return compilePortMap(cfg)
	default:
		return nil, fmt.Errorf("unknown rule type %q", spec.Type)
	}
}

func compileAddressMap(cfg addressMapConfig) (Rule, error) {
	if len(cfg.Map) == 0 {
		return nil, fmt.Errorf("address_map requires a non-empty 'map'")
	}

	m := make(map[netip.Addr]netip.Addr, len(cfg.Map))
	for from, to := range cfg.Map {
		fromAddr, err := netip.ParseAddr(from)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", from, err)
		}
		toAddr, err := netip.ParseAddr(to)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", to, err)
		}
		// Rewriting never changes the address family: header layouts
		// have no room for it.
		if fromAddr.Is4() != toAddr.Is4() {
			return nil, fmt.Errorf("address map %s -> %s crosses IP versions", from, to)
		}
		m[fromAddr] = toAddr
	}
	return &addressMapRule{m: m}, nil
}

func compilePortMap(cfg portMapConfig) (Rule, error) {
	if len(cfg.Map) == 0 {
		return nil, fmt.Errorf("port_map requires a non-empty 'map'")
	}

	m := make(map[uint16]uint16, len(cfg.Map))
	for from, to := range cfg.Map {
		fromPort, err := strconv.Atoi(from)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", from, err)
		}
		if !netutil.IsValidPort(fromPort) {
			return nil, fmt.Errorf("invalid port %d", fromPort)
		}
		if !netutil.IsValidPort(to) {
			return nil, fmt.Errorf("invalid port %d", to)
		}
		m[uint16(fromPort)] = uint16(to)
	}
	return &portMapRule{m: m}, nil
}
