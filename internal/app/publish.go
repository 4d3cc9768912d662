package app

import (
	"context"

	"github.com/specialistvlad/nodebridge/internal/publish"
)

type publishFunc func(context.Context, publish.Options, publish.Message) (any, error)

var defaultPublish publishFunc = publish.Publish

func (a *App) publishOptions() publish.Options {
	p := a.config.Publish
	return publish.Options{
		URL:                p.URL,
		Namespace:          p.Namespace,
		Event:              p.Event,
		AckEvent:           p.AckEvent,
		Timeout:            p.Timeout,
		InsecureSkipVerify: p.InsecureSkipVerify,
	}
}
