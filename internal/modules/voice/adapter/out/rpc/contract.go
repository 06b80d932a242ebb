package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "voice"
	serviceName       = "studybuddy.voice.v1.VoicePlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodSpeak       = "/" + serviceName + "/Speak"
	methodStop        = "/" + serviceName + "/Stop"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "STUDYBUDDY_VOICE_PLUGIN",
	MagicCookieValue: "studybuddy",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Languages []string `json:"languages"`
}

type SpeakRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Pitch    float64 `json:"pitch"`
	Rate     float64 `json:"rate"`
	Volume   float64 `json:"volume"`
}

type SpeakResponse struct {
	Accepted bool   `json:"accepted"`
	Detail   string `json:"detail"`
}

type VoicePluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Speak(ctx context.Context, in *SpeakRequest) (*SpeakResponse, error)
	Stop(ctx context.Context, in *Empty) (*Empty, error)
}

type VoicePluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Speak(ctx context.Context, in *SpeakRequest) (*SpeakResponse, error)
	Stop(ctx context.Context) error
}

type voicePluginClient struct {
	conn *grpc.ClientConn
}

func NewVoicePluginClient(conn *grpc.ClientConn) VoicePluginClient {
	return &voicePluginClient{conn: conn}
}

func (c *voicePluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *voicePluginClient) Speak(ctx context.Context, in *SpeakRequest) (*SpeakResponse, error) {
	out := &SpeakResponse{}
	if err := c.conn.Invoke(ctx, methodSpeak, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *voicePluginClient) Stop(ctx context.Context) error {
	return c.conn.Invoke(ctx, methodStop, &Empty{}, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

// unary adapts a typed handler to grpc.MethodDesc, honouring interceptors.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterVoicePluginServer(server grpc.ServiceRegistrar, impl VoicePluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*VoicePluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "Speak", Handler: unary(methodSpeak, impl.Speak)},
			{MethodName: "Stop", Handler: unary(methodStop, impl.Stop)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/voice-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl VoicePluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterVoicePluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewVoicePluginClient(conn), nil
}

func PluginMap(impl VoicePluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
