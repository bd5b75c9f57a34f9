package probes

import (
	"context"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// fakeConn conexión vacía suficiente para la sonda de puertos
type fakeConn struct{ net.Conn }

func (fakeConn) Close() error { return nil }

// fakeDialer dialer de pruebas: puertos abiertos explícitos, el resto
// rechaza; los puertos en hang esperan al deadline
type fakeDialer struct {
	open map[string]bool
	hang map[string]bool
}

func (d *fakeDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	if d.hang[addr] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if d.open[addr] {
		return fakeConn{}, nil
	}
	return nil, &net.OpError{Op: "dial", Net: network, Err: syscall.ECONNREFUSED}
}

func unit(key string) models.ProbeUnit {
	return models.ProbeUnit{ScanID: "scan-1", Key: key}
}

func TestPortProbeOutcomes(t *testing.T) {
	dialer := &fakeDialer{
		open: map[string]bool{"127.0.0.1:22": true},
		hang: map[string]bool{"127.0.0.1:9999": true},
	}
	probe := NewPortProbe("127.0.0.1", dialer)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	open := probe.Execute(ctx, unit("22"))
	assert.Equal(t, models.OutcomeSuccess, open.Outcome)

	closed := probe.Execute(ctx, unit("23"))
	assert.Equal(t, models.OutcomeNegative, closed.Outcome)

	hung := probe.Execute(ctx, unit("9999"))
	assert.Equal(t, models.OutcomeTimeout, hung.Outcome)
}

func TestPortProbeUnexpectedFailureIsError(t *testing.T) {
	badDialer := dialerFunc(func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, &net.OpError{Op: "dial", Err: syscall.ENETUNREACH}
	})
	probe := NewPortProbe("127.0.0.1", badDialer)

	res := probe.Execute(context.Background(), unit("80"))
	require.Equal(t, models.OutcomeError, res.Outcome)
	assert.NotEmpty(t, res.Err)
}

// dialerFunc adaptador función→Dialer
type dialerFunc func(ctx context.Context, network, addr string) (net.Conn, error)

func (f dialerFunc) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return f(ctx, network, addr)
}
