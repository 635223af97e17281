package libvirt

import (
	"fmt"
	"subuk/numango/util"
	"sync"

	"github.com/rs/zerolog"

	libvirt "github.com/libvirt/libvirt-go"
)

// ConnectionPool keeps a single cached connection. Acquire holds the pool
// lock until Release.
type ConnectionPool struct {
	uri    string
	mutex  *sync.Mutex
	logger zerolog.Logger
	cached *libvirt.Connect
}

func NewConnectionPool(uri string, logger zerolog.Logger) *ConnectionPool {
	return &ConnectionPool{
		uri:    uri,
		mutex:  &sync.Mutex{},
		logger: logger,
	}
}

func (p *ConnectionPool) Uri() string {
	return p.uri
}

func (p *ConnectionPool) Acquire() (*libvirt.Connect, error) {
	p.mutex.Lock()
	conn, err := p.connect()
	if err != nil {
		p.mutex.Unlock()
		return nil, err
	}
	return conn, nil
}

func (p *ConnectionPool) connect() (*libvirt.Connect, error) {
	if p.cached == nil {
		p.logger.Debug().Str("uri", p.uri).Msg("establishing new connection")
		newConn, err := libvirt.NewConnect(p.uri)
		if err != nil {
			return nil, util.NewError(err, "cannot open libvirt connection")
		}
		p.cached = newConn
	}
	alive, err := p.cached.IsAlive()
	if err != nil || !alive {
		p.logger.Warn().Err(err).Msg("dropping dead libvirt connection")
		p.cached.Close()
		p.cached = nil
		if err != nil {
			return nil, util.NewError(err, "libvirt connection is not alive")
		}
		return nil, fmt.Errorf("libvirt connection is not alive")
	}
	return p.cached, nil
}

func (p *ConnectionPool) Release(conn *libvirt.Connect) {
	p.mutex.Unlock()
}

func (p *ConnectionPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.cached == nil {
		return nil
	}
	_, err := p.cached.Close()
	p.cached = nil
	return err
}
