// Package handlers provides HTTP request handlers for the eventmaster API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/cache"
	"github.com/agentstation/eventmaster/internal/ical"
	"github.com/agentstation/eventmaster/internal/server/sse"
	"github.com/agentstation/eventmaster/pkg/view"
)

// Limits bounds request handling.
type Limits struct {
	MaxUploadBytes int64
	MergeTimeout   time.Duration
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	board     eventmaster.Board
	views     *cache.Cache[[]view.Item]
	sse       *sse.Broadcaster
	exporter  *ical.Exporter
	limits    Limits
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(
	board eventmaster.Board,
	views *cache.Cache[[]view.Item],
	broadcaster *sse.Broadcaster,
	exporter *ical.Exporter,
	limits Limits,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		board:     board,
		views:     views,
		sse:       broadcaster,
		exporter:  exporter,
		limits:    limits,
		logger:    logger,
		startTime: time.Now(),
	}
}
