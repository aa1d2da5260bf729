package daemon

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/pkg/sshutil"
)

// Pool keeps SSH connections to remote daemon hosts alive between refresh
// cycles. Coins sharing a host share a connection.
type Pool struct {
	mu          sync.Mutex
	connections map[string]*poolEntry
	timeout     time.Duration
	dial        func(host string, timeout time.Duration) (*sshutil.Client, error)
}

type poolEntry struct {
	client   *sshutil.Client
	lastUsed time.Time
}

// NewPool creates a new SSH connection pool.
func NewPool(timeout time.Duration) *Pool {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Pool{
		connections: make(map[string]*poolEntry),
		timeout:     timeout,
		dial:        sshutil.Dial,
	}
}

// Get returns a live connection to the first reachable host in hosts.
// Dead cached connections are replaced.
func (p *Pool) Get(hosts []string) (*sshutil.Client, error) {
	var lastErr error
	for _, host := range hosts {
		client, err := p.getOne(host)
		if err == nil {
			return client, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New(errors.ErrSSH, "No SSH hosts configured", "")
	}
	return nil, lastErr
}

func (p *Pool) getOne(host string) (*sshutil.Client, error) {
	p.mu.Lock()
	entry, exists := p.connections[host]
	p.mu.Unlock()

	if exists && entry.client != nil {
		if isAlive(entry.client) {
			p.mu.Lock()
			entry.lastUsed = time.Now()
			p.mu.Unlock()
			return entry.client, nil
		}
		p.remove(host)
	}

	client, err := p.dial(host, p.timeout)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.connections[host] = &poolEntry{client: client, lastUsed: time.Now()}
	p.mu.Unlock()
	return client, nil
}

// Dialer returns a DialFunc that tunnels TCP connections through the first
// reachable host in hosts. The addr is resolved on the remote side.
func (p *Pool) Dialer(hosts []string) DialFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		client, err := p.Get(hosts)
		if err != nil {
			return nil, err
		}
		type result struct {
			conn net.Conn
			err  error
		}
		ch := make(chan result, 1)
		go func() {
			conn, err := client.Client.Dial(network, addr)
			ch <- result{conn, err}
		}()
		select {
		case <-ctx.Done():
			go func() {
				if r := <-ch; r.conn != nil {
					r.conn.Close()
				}
			}()
			return nil, ctx.Err()
		case r := <-ch:
			if r.err != nil {
				return nil, errors.WrapWithCode(r.err, errors.ErrSSH,
					"Can't open RPC tunnel to "+addr+" via "+client.Host,
					"Check the daemon listens on that address on the remote host")
			}
			return r.conn, nil
		}
	}
}

// Executor returns an Executor that runs commands on the first reachable host.
func (p *Pool) Executor(hosts []string) Executor {
	return poolExecutor{pool: p, hosts: hosts}
}

type poolExecutor struct {
	pool  *Pool
	hosts []string
}

func (e poolExecutor) Exec(cmd string) ([]byte, []byte, int, error) {
	client, err := e.pool.Get(e.hosts)
	if err != nil {
		return nil, nil, -1, err
	}
	return client.Exec(cmd)
}

// Close closes all connections in the pool and clears it.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for host, entry := range p.connections {
		if entry.client != nil {
			_ = entry.client.Close()
		}
		delete(p.connections, host)
	}
}

// Size returns the number of connections in the pool.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.connections)
}

func (p *Pool) remove(host string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.connections[host]; ok {
		if entry.client != nil {
			_ = entry.client.Close()
		}
		delete(p.connections, host)
	}
}

// isAlive sends a keepalive request instead of opening a session.
func isAlive(client *sshutil.Client) bool {
	if client == nil || client.Client == nil {
		return false
	}
	_, _, err := client.SendRequest("keepalive@openssh.com", true, nil)
	return err == nil
}
