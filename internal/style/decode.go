package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the serialization format of a document, declared by its file extension.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat returns the format with the given name ("json", "yaml", "yml" or "toml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported format %q", name)
	}
}

// FormatFromPath returns the format declared by the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatUnknown, fmt.Errorf("cannot determine the format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

// decode parses data into a generic value. Syntax errors are returned as is and
// wrapped into a ParseError by the caller.
func decode(data []byte, format Format) (any, error) {
	var out any
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&out); err != nil {
			return nil, err
		}
		if _, err := decoder.Token(); err != io.EOF {
			return nil, fmt.Errorf("invalid character after top-level value at offset %d", decoder.InputOffset())
		}
		if err := checkDuplicateKeys(json.NewDecoder(bytes.NewReader(data)), "$"); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case FormatTOML:
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		out = table
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	return normalizeValue(out), nil
}

// checkDuplicateKeys walks one JSON value and rejects objects that repeat a key.
// encoding/json keeps the last value silently, while yaml.v3 and go-toml fail.
func checkDuplicateKeys(decoder *json.Decoder, path string) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '{':
		seen := make(map[string]struct{})
		for decoder.More() {
			token, err := decoder.Token()
			if err != nil {
				return err
			}
			key, _ := token.(string)
			if _, ok := seen[key]; ok {
				return fmt.Errorf("duplicate key %q in %s", key, path)
			}
			seen[key] = struct{}{}
			if err := checkDuplicateKeys(decoder, path+"."+key); err != nil {
				return err
			}
		}
	case '[':
		for i := 0; decoder.More(); i++ {
			if err := checkDuplicateKeys(decoder, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	// closing delimiter
	_, err = decoder.Token()
	return err
}

// normalizeValue gives every format the same value shapes: mappings become
// map[string]any (yaml.v3 decodes non-string keys as map[any]any), integral numbers
// become int64 and other numbers float64.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeValue(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeValue(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalizeValue(e)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return t.String()
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return normalizeUint(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return normalizeUint(t)
	case float32:
		return normalizeFloat(float64(t))
	case float64:
		return normalizeFloat(t)
	default:
		return v
	}
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

// Encode writes cfg as a document in the given format.
func Encode(cfg Config, format Format) ([]byte, error) {
	doc := cfg.Document()
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("json.Encode() > %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("yaml.Encode() > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("yaml.Close() > %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		if field := findNull(doc, ""); field != "" {
			return nil, fmt.Errorf("%s is null, which TOML cannot represent", field)
		}
		data, err := toml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("toml.Marshal() > %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

// findNull returns the path of the first null value in v, or "" if there is none.
func findNull(v any, path string) string {
	switch t := v.(type) {
	case nil:
		return path
	case map[string]any:
		for _, k := range sortedKeys(t) {
			child := k
			if path != "" {
				child = path + "." + k
			}
			if found := findNull(t[k], child); found != "" {
				return found
			}
		}
	case []any:
		for i, e := range t {
			if found := findNull(e, fmt.Sprintf("%s[%d]", path, i)); found != "" {
				return found
			}
		}
	}
	return ""
}
