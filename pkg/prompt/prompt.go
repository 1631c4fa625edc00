package prompt

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/billingpanel/pkg/logger"
)

// Prompt is a question with an ordered list of options.
type Prompt struct {
	ID      uuid.UUID
	Title   string
	Options []string
}

// Pending is an open prompt waiting for an answer.
type Pending struct {
	Prompt

	broker *Broker
	done   chan struct{}
	once   sync.Once
	index  int
	ok     bool
}

// Done is closed once the prompt is answered or dismissed.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the prompt is answered, dismissed or ctx is done.
// ok is false unless an option was picked. A done ctx dismisses the prompt.
func (p *Pending) Await(ctx context.Context) (index int, ok bool) {
	select {
	case <-p.done:
	case <-ctx.Done():
		p.broker.settle(p, 0, false)
		<-p.done
	}
	return p.index, p.ok
}

// Broker keeps open prompts until they are answered over a separate request.
type Broker struct {
	mu      sync.Mutex
	pending map[uuid.UUID]*Pending
	logger  *slog.Logger
}

// Option configures a Broker.
type Option func(*Broker)

func WithLogger(l *slog.Logger) Option {
	return func(b *Broker) {
		if l != nil {
			b.logger = l
		}
	}
}

func NewBroker(opts ...Option) *Broker {
	b := &Broker{
		pending: make(map[uuid.UUID]*Pending),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(logger.Component("prompt.broker"))
	return b
}

// Open registers a new prompt.
func (b *Broker) Open(title string, options []string) (*Pending, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	p := &Pending{
		Prompt: Prompt{
			ID:      uuid.New(),
			Title:   title,
			Options: slices.Clone(options),
		},
		broker: b,
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	b.pending[p.ID] = p
	b.mu.Unlock()

	b.logger.Debug("prompt opened", logger.PromptID(p.ID))
	return p, nil
}

// Get returns an open prompt.
func (b *Broker) Get(id uuid.UUID) (Prompt, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pending[id]
	if !ok {
		return Prompt{}, false
	}
	return p.Prompt, true
}

// List returns the open prompts in no particular order.
func (b *Broker) List() []Prompt {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Prompt, 0, len(b.pending))
	for _, p := range b.pending {
		out = append(out, p.Prompt)
	}
	return out
}

// Len returns the number of open prompts.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Answer picks option index of the prompt.
func (b *Broker) Answer(id uuid.UUID, index int) error {
	p, err := b.lookup(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(p.Options) {
		return ErrInvalidChoice
	}
	if !b.settle(p, index, true) {
		return ErrPromptNotFound
	}
	b.logger.Debug("prompt answered", logger.PromptID(id), slog.Int("choice", index))
	return nil
}

// Dismiss closes the prompt without a choice.
func (b *Broker) Dismiss(id uuid.UUID) error {
	p, err := b.lookup(id)
	if err != nil {
		return err
	}
	if !b.settle(p, 0, false) {
		return ErrPromptNotFound
	}
	b.logger.Debug("prompt dismissed", logger.PromptID(id))
	return nil
}

func (b *Broker) lookup(id uuid.UUID) (*Pending, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pending[id]
	if !ok {
		return nil, ErrPromptNotFound
	}
	return p, nil
}

// settle records the outcome once. It reports whether this call was the one that settled p.
func (b *Broker) settle(p *Pending, index int, ok bool) bool {
	settled := false
	p.once.Do(func() {
		b.mu.Lock()
		delete(b.pending, p.ID)
		b.mu.Unlock()

		p.index, p.ok = index, ok
		close(p.done)
		settled = true
	})
	return settled
}
