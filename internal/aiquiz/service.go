package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/placement-portal/quiz-api/internal/config"
)

type Generator interface {
	Generate(ctx context.Context, topic string, requestedCount int) ([]Question, error)
}

type Options struct {
	// Timeout bounds each call to the provider. Zero disables it.
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

type generator struct {
	provider Provider
	opts     Options
}

func NewGenerator(provider Provider, opts Options) Generator {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &generator{provider: provider, opts: opts}
}

func (g *generator) Generate(ctx context.Context, topic string, requestedCount int) ([]Question, error) {
	count := EffectiveCount(requestedCount)
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"topic":           topic,
		"requested_count": requestedCount,
		"effective_count": count,
	})

	raw, err := g.complete(ctx, log, BuildPrompt(topic, count))
	if err != nil {
		log.WithError(err).Error("Generative service call failed")
		return nil, err
	}
	log.Debugf("Raw generative response:\n%s", raw)

	questions, err := ParseQuestions(raw)
	if err != nil {
		log.WithError(err).Error("Rejected generative response")
		return nil, err
	}

	if len(questions) > count {
		questions = questions[:count]
	}

	log.Infof("Generated %d questions", len(questions))
	return questions, nil
}

// complete calls the provider, retrying transient failures up to MaxRetries times.
func (g *generator) complete(ctx context.Context, log *logrus.Entry, prompt string) (string, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(g.opts.RetryDelay), uint64(g.opts.MaxRetries)),
		ctx,
	)

	attempt := 0
	raw, err := backoff.RetryWithData(func() (string, error) {
		attempt++
		attemptCtx, cancel := g.attemptContext(ctx)
		defer cancel()

		text, err := g.provider.Complete(attemptCtx, prompt)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil || !isTransient(err) {
			return "", backoff.Permanent(err)
		}
		log.WithError(err).WithField("attempt", attempt).Warn("Transient generative service failure")
		return "", err
	}, policy)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return raw, nil
}

func (g *generator) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.opts.Timeout)
}

func isTransient(err error) bool {
	if errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
