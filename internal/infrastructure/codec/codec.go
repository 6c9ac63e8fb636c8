// Package codec provides the serializers used for cached entity snapshots.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// New returns the codec registered under name ("json" or "msgpack").
func New(name string) (ports.Codec, error) {
	switch name {
	case "", "json":
		return JSON{}, nil
	case "msgpack":
		return MsgPack{}, nil
	default:
		return nil, fmt.Errorf("unknown cache codec %q", name)
	}
}

// JSON encodes snapshots with encoding/json, matching the documents stored
// in the search index.
type JSON struct{}

func (JSON) Name() string                       { return "json" }
func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// MsgPack encodes snapshots with msgpack, reusing the json struct tags so both
// codecs agree on field names.
type MsgPack struct{}

func (MsgPack) Name() string { return "msgpack" }

func (MsgPack) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (MsgPack) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
