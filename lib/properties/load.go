package properties

import (
	"path/filepath"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/magiconair/properties"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var log = logger.GetGoI2PLogger()

// ErrUnsupportedValue is returned by LoadYAML for values that cannot be
// flattened into a single string.
var ErrUnsupportedValue = oops.New("unsupported property value")

// LoadFile reads path with the loader matching its extension:
// ".yaml" and ".yml" go through LoadYAML, everything else through Load.
func LoadFile(fs afero.Fs, path string) (*Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(fs, path)
	default:
		return Load(fs, path)
	}
}

// Load parses a flat property file ("key=value", "key: value", '#' and '!'
// comments, backslash continuations). Values are taken literally; ${...}
// references are not expanded.
func Load(fs afero.Fs, path string) (*Set, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "read property file")
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "parse property file")
	}

	s := New()
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		s.Set(k, v)
	}

	log.WithFields(logger.Fields{
		"at":    "properties.Load",
		"path":  path,
		"count": s.Len(),
	}).Debug("loaded property file")
	return s, nil
}

// LoadYAML reads a YAML mapping into a Set. Nested mappings are flattened
// with '.' separators and sequences are joined with ','.
func LoadYAML(fs afero.Fs, path string) (*Set, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "read yaml file")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, oops.With("path", path).Wrapf(err, "parse yaml file")
	}

	s := New()
	if len(doc.Content) == 0 {
		return s, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, oops.With("path", path).Wrapf(ErrUnsupportedValue, "yaml root must be a mapping")
	}
	if err := flattenYAML(s, "", root); err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}

	log.WithFields(logger.Fields{
		"at":    "properties.LoadYAML",
		"path":  path,
		"count": s.Len(),
	}).Debug("loaded yaml property file")
	return s, nil
}

func flattenYAML(s *Set, prefix string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if prefix != "" {
			key = prefix + "." + key
		}
		value := node.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				s.Set(key, "")
			} else {
				s.Set(key, value.Value)
			}
		case yaml.MappingNode:
			if err := flattenYAML(s, key, value); err != nil {
				return err
			}
		case yaml.SequenceNode:
			items := make([]string, 0, len(value.Content))
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return oops.With("key", key).Wrapf(ErrUnsupportedValue, "nested sequence element")
				}
				items = append(items, item.Value)
			}
			s.Set(key, strings.Join(items, ","))
		default:
			return oops.With("key", key).Wrapf(ErrUnsupportedValue, "yaml node kind %d", value.Kind)
		}
	}
	return nil
}
