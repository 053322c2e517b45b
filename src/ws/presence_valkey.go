package ws

import (
	"context"

	"github.com/valkey-io/valkey-go"
)

const presenceSetKey = "worklink:online"

// ValkeyPresence stores the online set in a shared Valkey instance, so
// presence survives being split across multiple backend processes. Connection
// handles stay local; only the identity keys are shared.
type ValkeyPresence struct {
	client valkey.Client
}

func NewValkeyPresence(addr string) (*ValkeyPresence, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	return &ValkeyPresence{client: client}, nil
}

func (p *ValkeyPresence) Add(ctx context.Context, key string) error {
	return p.client.Do(ctx, p.client.B().Sadd().Key(presenceSetKey).Member(key).Build()).Error()
}

func (p *ValkeyPresence) Remove(ctx context.Context, key string) error {
	return p.client.Do(ctx, p.client.B().Srem().Key(presenceSetKey).Member(key).Build()).Error()
}

func (p *ValkeyPresence) List(ctx context.Context) ([]string, error) {
	return p.client.Do(ctx, p.client.B().Smembers().Key(presenceSetKey).Build()).AsStrSlice()
}

func (p *ValkeyPresence) Close() {
	p.client.Close()
}
