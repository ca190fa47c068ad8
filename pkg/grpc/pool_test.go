package grpc

import (
	"context"
	"testing"

	"google.golang.org/grpc"
)

func TestPool_ReusesConnectionPerTarget(t *testing.T) {
	passthrough := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(ctx, method, req, reply, cc, opts...)
	}
	p := NewPool(WithInterceptor(passthrough), WithDialOptions(grpc.WithUserAgent("pool-test")))
	defer p.Close()

	a, err := p.GetConnection("passthrough:///a:1")
	if err != nil {
		t.Fatal(err)
	}
	again, err := p.GetConnection("passthrough:///a:1")
	if err != nil {
		t.Fatal(err)
	}
	if a != again {
		t.Fatal("same target returned a different connection")
	}
	b, err := p.GetConnection("passthrough:///b:1")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("different targets share a connection")
	}
}

func TestPool_ReplacesClosedConnection(t *testing.T) {
	p := NewPool()
	defer p.Close()

	first, err := p.GetConnection("passthrough:///a:1")
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}
	second, err := p.GetConnection("passthrough:///a:1")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("closed connection was reused")
	}
}

func TestPool_Close(t *testing.T) {
	p := NewPool()
	conn, err := p.GetConnection("passthrough:///a:1")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.load("passthrough:///a:1"); ok {
		t.Fatal("connection still pooled after Close")
	}
	if err := conn.Close(); err == nil {
		t.Fatal("connection was not closed by the pool")
	}
}
