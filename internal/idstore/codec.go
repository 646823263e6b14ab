package idstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Codec converts between the in-memory mapping and the file's bytes.
// Decode must reject anything that isn't a flat string-to-string mapping.
type Codec interface {
	Encode(entries map[string]string) ([]byte, error)
	Decode(data []byte) (map[string]string, error)
	String() string
}

// CodecFor picks a codec from the file extension. TOML is the default.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonCodec{}
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return tomlCodec{}
	}
}

// checkUTF8 rejects entries a codec would corrupt or refuse to read back.
func checkUTF8(entries map[string]string) error {
	for name, id := range entries {
		if !utf8.ValidString(name) {
			return fmt.Errorf("%w: name %q", ErrInvalidUTF8, name)
		}
		if !utf8.ValidString(id) {
			return fmt.Errorf("%w: id stored under %q", ErrInvalidUTF8, name)
		}
	}
	return nil
}

type tomlCodec struct{}

func (tomlCodec) Encode(entries map[string]string) ([]byte, error) {
	if err := checkUTF8(entries); err != nil {
		return nil, err
	}
	b := bytes.NewBuffer(nil)
	if err := toml.NewEncoder(b).Encode(entries); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (tomlCodec) Decode(data []byte) (map[string]string, error) {
	entries := make(map[string]string)
	if err := toml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (tomlCodec) String() string { return "toml" }

type jsonCodec struct{}

func (jsonCodec) Encode(entries map[string]string) ([]byte, error) {
	if err := checkUTF8(entries); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Decode(data []byte) (map[string]string, error) {
	entries := make(map[string]string)
	if len(bytes.TrimSpace(data)) == 0 {
		return entries, nil // Freshly created file
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		// A literal null decodes to a nil map
		entries = make(map[string]string)
	}
	return entries, nil
}

func (jsonCodec) String() string { return "json" }

type yamlCodec struct{}

func (yamlCodec) Encode(entries map[string]string) ([]byte, error) {
	if err := checkUTF8(entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []byte{}, nil
	}
	return yaml.Marshal(entries)
}

func (yamlCodec) Decode(data []byte) (map[string]string, error) {
	entries := make(map[string]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return entries, nil
}

func (yamlCodec) String() string { return "yaml" }
