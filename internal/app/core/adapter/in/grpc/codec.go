package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName 是 gRPC content-subtype，請求會以 application/grpc+json 傳輸
const CodecName = "json"

// jsonCodec 以 JSON 編碼 gRPC 訊息，decimal 金額以字串傳輸不失精度
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
