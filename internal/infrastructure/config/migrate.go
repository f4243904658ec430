package config

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// KeyChangeType classifies a difference between the user file and defaults.
type KeyChangeType int

const (
	// KeyChangeAdded is a key the file lacks; its default will be written.
	KeyChangeAdded KeyChangeType = iota
	// KeyChangeRemoved is a key retouch no longer reads.
	KeyChangeRemoved
	// KeyChangeRenamed is an unknown key that looks like a renamed known one.
	KeyChangeRenamed
)

// KeyChange is one entry of a config migration.
type KeyChange struct {
	Type     KeyChangeType
	OldKey   string
	NewKey   string
	OldValue string
	NewValue string
}

// Migrator compares a config file against the current defaults.
type Migrator struct {
	defaultViper *viper.Viper
	path         string
}

// NewMigrator creates a Migrator for the config file at path. An empty path
// selects the default location.
func NewMigrator(path string) (*Migrator, error) {
	if path == "" {
		p, err := GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get config file path: %w", err)
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("toml")
	m := &Manager{viper: v}
	m.setDefaults()

	return &Migrator{defaultViper: v, path: path}, nil
}

// Path returns the config file being compared.
func (m *Migrator) Path() string {
	return m.path
}

// DetectChanges lists keys to add, drop or rename. A missing file needs no
// migration.
func (m *Migrator) DetectChanges() ([]KeyChange, error) {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		return nil, nil
	}

	userKeys, err := m.readUserKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	defaultKeys := make(map[string]bool)
	for _, k := range m.defaultViper.AllKeys() {
		defaultKeys[k] = true
	}

	var unknown, missing []string
	for k := range userKeys {
		if !defaultKeys[k] {
			unknown = append(unknown, k)
		}
	}
	for k := range defaultKeys {
		if _, ok := userKeys[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(unknown)
	sort.Strings(missing)

	var changes []KeyChange
	used := make(map[string]bool)
	for _, oldKey := range unknown {
		newKey := renameTarget(oldKey, missing, used)
		if newKey == "" {
			changes = append(changes, KeyChange{
				Type:     KeyChangeRemoved,
				OldKey:   oldKey,
				OldValue: formatValue(userKeys[oldKey]),
			})
			continue
		}
		used[newKey] = true
		changes = append(changes, KeyChange{
			Type:     KeyChangeRenamed,
			OldKey:   oldKey,
			NewKey:   newKey,
			OldValue: formatValue(userKeys[oldKey]),
			NewValue: formatValue(m.defaultViper.Get(newKey)),
		})
	}
	for _, newKey := range missing {
		if used[newKey] {
			continue
		}
		changes = append(changes, KeyChange{
			Type:     KeyChangeAdded,
			NewKey:   newKey,
			NewValue: formatValue(m.defaultViper.Get(newKey)),
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Type != changes[j].Type {
			return changes[i].Type < changes[j].Type
		}
		return changeKey(changes[i]) < changeKey(changes[j])
	})
	return changes, nil
}

// Migrate rewrites the file with every current key. Values of renamed keys
// are carried over; unknown keys are dropped.
func (m *Migrator) Migrate() ([]KeyChange, error) {
	changes, err := m.DetectChanges()
	if err != nil || len(changes) == 0 {
		return changes, err
	}

	userKeys, err := m.readUserKeys()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	mgr := &Manager{viper: v}
	mgr.setDefaults()
	for k, val := range userKeys {
		v.Set(k, val)
	}
	for _, c := range changes {
		if c.Type == KeyChangeRenamed {
			v.Set(c.NewKey, userKeys[c.OldKey])
		}
	}

	cfg, err := mgr.unmarshalConfig()
	if err != nil {
		return nil, err
	}
	if err := WriteConfigOrdered(cfg, m.path); err != nil {
		return nil, err
	}
	return changes, nil
}

func (m *Migrator) readUserKeys() (map[string]any, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	flat := make(map[string]any)
	flattenMap("", raw, flat)
	return flat, nil
}

func flattenMap(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			flattenMap(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// renameTarget finds a missing key in the same section whose leaf looks like
// oldKey's leaf, e.g. backend.timeout -> backend.timeout_seconds. Prefix
// matches win over substring matches.
func renameTarget(oldKey string, missing []string, used map[string]bool) string {
	oldParent, oldLeaf := splitKey(oldKey)
	if oldParent == "" {
		return ""
	}

	best, bestScore := "", 0
	for _, newKey := range missing {
		if used[newKey] {
			continue
		}
		newParent, newLeaf := splitKey(newKey)
		if oldParent != newParent {
			continue
		}
		score := 0
		switch {
		case strings.HasPrefix(newLeaf, oldLeaf) || strings.HasPrefix(oldLeaf, newLeaf):
			score = 2
		case strings.Contains(newLeaf, oldLeaf) || strings.Contains(oldLeaf, newLeaf):
			score = 1
		}
		if score > bestScore {
			best, bestScore = newKey, score
		}
	}
	return best
}

func splitKey(key string) (parent, leaf string) {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}

func changeKey(c KeyChange) string {
	if c.NewKey != "" {
		return c.NewKey
	}
	return c.OldKey
}

func formatValue(v any) string {
	if v == nil {
		return `""`
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("%v", v)
}
