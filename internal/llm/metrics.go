package llm

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_gateway_requests_total",
		Help: "Requests issued to the generative gateway, by operation.",
	}, []string{"op"})

	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_gateway_failures_total",
		Help: "Failed gateway requests, by operation.",
	}, []string{"op"})
)

type instrumentedText struct{ inner TextClient }

func instrumentText(c TextClient) TextClient { return instrumentedText{inner: c} }

func (i instrumentedText) Generate(ctx context.Context, prompt string) (string, error) {
	requestsTotal.WithLabelValues("generate").Inc()
	out, err := i.inner.Generate(ctx, prompt)
	if err != nil {
		failuresTotal.WithLabelValues("generate").Inc()
	}
	return out, err
}

type instrumentedChat struct{ inner ChatClient }

func instrumentChat(c ChatClient) ChatClient { return instrumentedChat{inner: c} }

func (i instrumentedChat) Chat(ctx context.Context, history []ChatMessage, message string, system string) (string, error) {
	requestsTotal.WithLabelValues("chat").Inc()
	out, err := i.inner.Chat(ctx, history, message, system)
	if err != nil {
		failuresTotal.WithLabelValues("chat").Inc()
	}
	return out, err
}

type instrumentedImage struct{ inner ImageClient }

func instrumentImage(c ImageClient) ImageClient { return instrumentedImage{inner: c} }

func (i instrumentedImage) GenerateImage(ctx context.Context, prompt string, aspectRatio string) ([]byte, error) {
	requestsTotal.WithLabelValues("image").Inc()
	out, err := i.inner.GenerateImage(ctx, prompt, aspectRatio)
	if err != nil {
		failuresTotal.WithLabelValues("image").Inc()
	}
	return out, err
}
