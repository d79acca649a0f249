// Package gateway forwards validated requests to the registered partner APIs
// and maps every outcome onto an envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AgentTarik/gosat-api/internal/envelope"
	"github.com/AgentTarik/gosat-api/telemetry"

	"go.uber.org/zap"
)

const (
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 4 << 20
	maxErrorSnippet  = 240
)

// Rejection messages.
const (
	MsgNotRegistered  = "Requisições para endereços não registrados não são permitidas."
	MsgEmptyAddress   = "O endereço não pode ser vazio."
	MsgInvalidAddress = "Formato de endereço inválido."
	MsgHandlerFailure = "Erro interno ao processar a resposta da API externa."
)

// Call outcomes, used as metric labels.
const (
	outcomeRejected  = "rejected"
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
	outcomePanicked  = "panicked"
)

type Config struct {
	// Destinations maps each target to its partner URL. Absent and blank
	// entries are reported per call.
	Destinations map[Target]string
	// AllowUnregistered permits raw Address destinations.
	AllowUnregistered bool
	Timeout           time.Duration
	Client            *http.Client
}

// Dispatcher performs one POST per call against a registered partner.
// It is safe for concurrent use.
type Dispatcher struct {
	log               *zap.Logger
	destinations      map[Target]string
	allowUnregistered bool
	timeout           time.Duration
	client            *http.Client
}

func New(cfg Config, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	dest := make(map[Target]string, len(cfg.Destinations))
	for t, addr := range cfg.Destinations {
		if t.registered() {
			dest[t] = strings.TrimSpace(addr)
		}
	}
	return &Dispatcher{
		log:               log,
		destinations:      dest,
		allowUnregistered: cfg.AllowUnregistered,
		timeout:           timeout,
		client:            client,
	}
}

// Configured reports whether t has a destination address.
func (d *Dispatcher) Configured(t Target) bool {
	return d.destinations[t] != ""
}

// Call resolves dest, posts payload as JSON and routes the result through
// onSuccess or onError. Nil handlers default to Status(200) and Status(500).
// Call never panics and never returns an error: every outcome is an envelope.
func (d *Dispatcher) Call(ctx context.Context, dest Destination, payload map[string]any, onSuccess OnSuccess, onError OnError) (env envelope.Envelope) {
	start := time.Now()
	label := labelFor(dest)
	outcome := outcomeRejected

	succeed := resolveSuccess(onSuccess)
	fail := resolveError(onError)

	defer func() {
		if r := recover(); r != nil {
			d.log.Error("outbound handler panic", zap.String("target", label), zap.Any("panic", r))
			outcome = outcomePanicked
			env = envelope.Build(MsgHandlerFailure, http.StatusInternalServerError)
		}
		dur := time.Since(start)
		telemetry.ObserveOutboundCall(label, outcome, dur)
		d.log.Info("outbound call",
			zap.String("target", label),
			zap.String("outcome", outcome),
			zap.Int("code", env.Code),
			zap.Duration("dur", dur),
		)
	}()

	addr, rejected := d.resolve(dest)
	if rejected != nil {
		return *rejected
	}

	body, callErr := d.post(ctx, addr, payload)
	if callErr != nil {
		outcome = outcomeFailed
		d.log.Warn("outbound call failed", zap.String("target", label), zap.Error(callErr))
		return fail(callErr)
	}
	outcome = outcomeSucceeded
	return succeed(body)
}

// resolve maps dest to a URL, or to the envelope explaining why it cannot be called.
func (d *Dispatcher) resolve(dest Destination) (string, *envelope.Envelope) {
	reject := func(msg string, code int) (string, *envelope.Envelope) {
		env := envelope.Build(msg, code)
		return "", &env
	}

	var addr string
	switch v := dest.(type) {
	case Target:
		if !v.registered() {
			return d.resolveAddress(Address(""), reject)
		}
		configured, ok := d.destinations[v]
		if !ok {
			return reject(v.MissingMessage(), http.StatusBadRequest)
		}
		addr = configured
	case Address:
		return d.resolveAddress(v, reject)
	default:
		return reject(MsgInvalidAddress, http.StatusInternalServerError)
	}

	if strings.TrimSpace(addr) == "" {
		return reject(MsgEmptyAddress, http.StatusBadRequest)
	}
	return addr, nil
}

func (d *Dispatcher) resolveAddress(a Address, reject func(string, int) (string, *envelope.Envelope)) (string, *envelope.Envelope) {
	if !d.allowUnregistered {
		return reject(MsgNotRegistered, http.StatusBadRequest)
	}
	addr := strings.TrimSpace(string(a))
	if addr == "" {
		return reject(MsgEmptyAddress, http.StatusBadRequest)
	}
	u, err := url.Parse(addr)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return reject(MsgInvalidAddress, http.StatusBadRequest)
	}
	return addr, nil
}

func (d *Dispatcher) post(ctx context.Context, addr string, payload map[string]any) (any, *CallError) {
	if payload == nil {
		payload = map[string]any{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, &CallError{Message: "Erro ao codificar a requisição: " + err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(b))
	if err != nil {
		return nil, &CallError{Message: "Erro ao consultar API externa: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, &CallError{Message: fmt.Sprintf("Erro ao consultar API externa: tempo limite de %s excedido.", d.timeout)}
		}
		return nil, &CallError{Message: "Erro ao consultar API externa: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &CallError{Message: "Erro ao ler resposta da API externa: " + err.Error(), Code: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &CallError{
			Message: fmt.Sprintf("Erro ao consultar API externa: resposta %d %s: %s",
				resp.StatusCode, http.StatusText(resp.StatusCode), snippet(raw)),
			Code: resp.StatusCode,
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, &CallError{Message: "Resposta inválida da API externa: " + err.Error(), Code: resp.StatusCode}
	}
	return out, nil
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorSnippet {
		s = s[:maxErrorSnippet] + " (truncated...)"
	}
	return s
}

func labelFor(dest Destination) string {
	switch v := dest.(type) {
	case Target:
		if v.registered() {
			return v.String()
		}
		return "unregistered"
	case Address:
		return "unregistered"
	default:
		return "invalid"
	}
}
