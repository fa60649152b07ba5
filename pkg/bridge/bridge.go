// Package bridge dispatches engine-agnostic hardware requests onto the
// transport. It is the one place where the front end's data model and the
// hardware-access library's data model meet: positions are resolved, engine
// addressing is validated, exactly one transport call is made, and every
// outcome is translated back into the caller's return-code domain.
package bridge

import (
	"errors"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/target"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/transport"
)

// Bridge holds the immutable collaborators of one build variant. It keeps no
// per-call state: buffers and positions belong to the caller and are never
// retained past the call.
type Bridge struct {
	registry *engine.Registry
	resolver *target.Resolver
	tr       transport.Transport
	xlate    *rc.Translator
	log      *zap.Logger
}

// Option customizes bridge construction.
type Option func(*Bridge)

// WithLogger attaches a logger; the default is a no-op.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// New wires a bridge from its collaborators.
func New(reg *engine.Registry, res *target.Resolver, tr transport.Transport, xlate *rc.Translator, opts ...Option) *Bridge {
	b := &Bridge{
		registry: reg,
		resolver: res,
		tr:       tr,
		xlate:    xlate,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Registry exposes the engine table for query surfaces.
func (b *Bridge) Registry() *engine.Registry { return b.registry }

// Resolver exposes the target resolver for enumeration surfaces.
func (b *Bridge) Resolver() *target.Resolver { return b.resolver }

// Execute runs one logical hardware operation. Validation happens strictly
// before the transport call, so a rejected request has touched no hardware.
// On a non-success return the buffer content is unspecified; callers must
// check the code, never infer success from the buffer.
func (b *Bridge) Execute(pos target.Position, engineName string, op engine.Op, buf *databuf.Buffer, opts engine.Options) rc.ReturnCode {
	// Registry checks come first: an unknown or compiled-out engine
	// short-circuits before the resolver runs, regardless of target
	// validity.
	desc, err := b.registry.Lookup(engineName)
	if err != nil {
		if errors.Is(err, engine.ErrEngineDisabled) {
			return rc.ClientError(rc.EngineDisabledInBuild)
		}
		return rc.ClientError(rc.UnknownEngine)
	}

	if !desc.Ops.Has(op) {
		return rc.ClientError(rc.UnsupportedOperation)
	}

	handle, err := b.resolver.Resolve(pos)
	if err != nil {
		return resolutionCode(err)
	}

	if buf == nil || buf.BitLen() == 0 {
		if !desc.AllowNilBuffer {
			return rc.ClientError(rc.InvalidBufferShape)
		}
	} else if desc.Validate != nil {
		if err := desc.Validate(op, buf, opts); err != nil {
			return rc.ClientError(rc.InvalidBufferShape)
		}
	}

	ref := refFor(handle)
	b.log.Debug("dispatch",
		zap.String("engine", desc.Name),
		zap.Stringer("op", op),
		zap.Stringer("target", pos),
	)

	raw := desc.Handle(b.tr, ref, op, buf, opts)
	out := b.xlate.Translate(raw)
	if out.Failed() {
		b.log.Warn("transport failure",
			zap.String("engine", desc.Name),
			zap.Stringer("op", op),
			zap.Stringer("target", pos),
			zap.Uint32("raw", raw),
		)
	}
	return out
}

// refFor converts a resolved handle into the transport's addressing.
func refFor(h target.Handle) transport.Ref {
	ref := transport.Ref{
		ChipType: h.Position.ChipType,
		Proc:     h.Position.Pos,
	}
	if h.Unit != nil {
		ref.UnitType = h.Unit.Type
		ref.Unit = h.Unit.ID
		ref.Thread = h.Position.Thread
	}
	return ref
}

// resolutionCode maps resolver errors, which are already caller-domain
// concepts, onto their return-code values.
func resolutionCode(err error) rc.ReturnCode {
	switch {
	case errors.Is(err, target.ErrTargetNotPresent):
		return rc.ClientError(rc.TargetNotPresent)
	case errors.Is(err, target.ErrAmbiguousTarget):
		return rc.ClientError(rc.AmbiguousTarget)
	default:
		return rc.ClientError(rc.NoSuchTarget)
	}
}
