// Package rpc exposes the legalizer's command surface over gRPC. Request
// and reply messages are plain Go structs encoded as JSON rather than
// protobuf — grpc-go's Codec is a supported extension point precisely for
// this, and it lets this package describe its wire messages without a
// protoc-generated counterpart for every request/reply pair.
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

// jsonCodec implements encoding.Codec (formerly grpc.Codec) by
// marshaling/unmarshaling any registered message type as JSON.
type jsonCodec struct{}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpc: marshaling %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpc: unmarshaling into %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return codecName }
