package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, string, string, any) error {
	p.calls++
	return errors.New("broker down")
}
func (p *failingPublisher) Close() error { return nil }

func TestEmit_SwallowsPublishErrors(t *testing.T) {
	t.Parallel()

	p := &failingPublisher{}
	Emit(context.Background(), p, TopicCartEvents, "k", map[string]any{"type": "x"})
	assert.Equal(t, 1, p.calls)
}

func TestEmit_NilPublisher(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, TopicCartEvents, "k", map[string]any{"type": "x"})
	})
}
