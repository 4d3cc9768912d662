// Package publish sends encoded views to a socket.io endpoint, such as an
// inspector UI listening for documents.
package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/nodebridge/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Options configures a publish call.
type Options struct {
	URL       string
	Namespace string
	// Event is emitted with the payload once connected.
	Event string
	// AckEvent, when set, is awaited after emitting; its first argument is
	// returned as the reply.
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Message is the payload emitted for one document.
type Message struct {
	Source      string `json:"source"`
	Format      string `json:"format"`
	Fingerprint string `json:"fingerprint"`
	Document    string `json:"document"`
}

type result struct {
	reply any
	err   error
}

// Publish connects to opts.URL, emits msg and waits for the acknowledgement
// event if one is configured.
func Publish(ctx context.Context, opts Options, msg Message) (any, error) {
	logger := ctxlog.FromContext(ctx).With("url", opts.URL, "event", opts.Event, "source", msg.Source)
	logger.Debug("Publish started")
	defer logger.Debug("Publish finished")

	if opts.Event == "" {
		return nil, errors.New("publish: event name is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var isConnected atomic.Bool
	done := make(chan result, 1)
	finish := func(r result) {
		select {
		case done <- r:
		default:
		}
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sockOpts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sockOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected, emitting document", "namespace", opts.Namespace, "sid", io.Id())
		io.Emit(opts.Event, msg)
		if opts.AckEvent == "" {
			finish(result{})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err, _ := first(errs).(error)
		if err == nil {
			err = errors.New("connection failed")
		}
		finish(result{err: err})
	})

	if opts.AckEvent != "" {
		io.On(types.EventName(opts.AckEvent), func(data ...any) {
			finish(result{reply: first(data)})
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", opts.AckEvent)
		}
		return nil, errors.New("timed out while waiting for initial connection")
	case res := <-done:
		return res.reply, res.err
	}
}

func first(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}
