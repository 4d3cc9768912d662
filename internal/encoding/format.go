package encoding

import (
	"fmt"
	"sort"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	ctymsgpack "github.com/zclconf/go-cty/cty/msgpack"
	"sigs.k8s.io/yaml"
)

// Format serializes runtime values.
type Format interface {
	Name() string
	Marshal(val cty.Value) ([]byte, error)
	Unmarshal(data []byte) (cty.Value, error)
}

// JSON encodes values as plain JSON. Decoding infers types from the
// document, so arrays come back as tuples and objects as objects.
type JSON struct {
	// Canonical applies RFC 8785 canonicalization to the output.
	Canonical bool
}

func (f JSON) Name() string {
	if f.Canonical {
		return "canonical-json"
	}
	return "json"
}

func (f JSON) Marshal(val cty.Value) ([]byte, error) {
	out, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	if f.Canonical {
		out, err = jsoncanonicalizer.Transform(out)
		if err != nil {
			return nil, fmt.Errorf("canonicalize json: %w", err)
		}
	}
	return out, nil
}

func (f JSON) Unmarshal(data []byte) (cty.Value, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return cty.NilVal, fmt.Errorf("infer json type: %w", err)
	}
	val, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unmarshal json: %w", err)
	}
	return val, nil
}

// MessagePack encodes values together with their types, so decoding yields
// exactly the value that was encoded.
type MessagePack struct{}

func (MessagePack) Name() string { return "msgpack" }

func (MessagePack) Marshal(val cty.Value) ([]byte, error) {
	out, err := ctymsgpack.Marshal(val, cty.DynamicPseudoType)
	if err != nil {
		return nil, fmt.Errorf("marshal msgpack: %w", err)
	}
	return out, nil
}

func (MessagePack) Unmarshal(data []byte) (cty.Value, error) {
	val, err := ctymsgpack.Unmarshal(data, cty.DynamicPseudoType)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unmarshal msgpack: %w", err)
	}
	return val, nil
}

// YAML encodes values as YAML through their JSON form.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Marshal(val cty.Value) ([]byte, error) {
	js, err := JSON{}.Marshal(val)
	if err != nil {
		return nil, err
	}
	out, err := yaml.JSONToYAML(js)
	if err != nil {
		return nil, fmt.Errorf("convert json to yaml: %w", err)
	}
	return out, nil
}

func (YAML) Unmarshal(data []byte) (cty.Value, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return cty.NilVal, fmt.Errorf("convert yaml to json: %w", err)
	}
	return JSON{}.Unmarshal(js)
}

var formats = map[string]Format{
	"json":           JSON{},
	"canonical-json": JSON{Canonical: true},
	"msgpack":        MessagePack{},
	"yaml":           YAML{},
}

// FormatByName returns the format registered under name.
func FormatByName(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q, expected one of %v", name, FormatNames())
	}
	return f, nil
}

// FormatNames lists the known format names.
func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
