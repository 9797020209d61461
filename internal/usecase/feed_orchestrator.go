package usecase

import (
	"context"
	"fmt"
	"io"

	"baggage-claim-service/pkg/logger"
	"baggage-claim-service/pkg/utils"
)

// FeedOrchestrator replays feed commands against a baggage handler and the
// monitors known to its router
type FeedOrchestrator struct {
	handler *BaggageHandler
	router  MonitorRouter
	parser  *utils.FeedParser
	logger  logger.Logger
}

// NewFeedOrchestrator creates a new feed orchestrator
func NewFeedOrchestrator(
	handler *BaggageHandler,
	router MonitorRouter,
	parser *utils.FeedParser,
	logger logger.Logger,
) *FeedOrchestrator {
	return &FeedOrchestrator{
		handler: handler,
		router:  router,
		parser:  parser,
		logger:  logger,
	}
}

// ProcessFeed parses a feed script and runs it
func (o *FeedOrchestrator) ProcessFeed(ctx context.Context, r io.Reader) error {
	commands, err := o.parser.Parse(r)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}
	return o.Run(ctx, commands)
}

// Run executes commands in order and stops at the first failure or when ctx
// is cancelled
func (o *FeedOrchestrator) Run(ctx context.Context, commands []utils.FeedCommand) error {
	o.logger.Info("Replaying feed", "commands", len(commands))

	for _, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.execute(cmd); err != nil {
			o.logger.Error("Feed command failed",
				"line", cmd.Line,
				"command", cmd.String(),
				"error", err)
			return fmt.Errorf("line %d (%s): %w", cmd.Line, cmd.String(), err)
		}
	}

	o.logger.Info("Feed replayed", "commands", len(commands))
	return nil
}

func (o *FeedOrchestrator) execute(cmd utils.FeedCommand) error {
	switch cmd.Verb {
	case utils.VerbUpdate, utils.VerbClear:
		return o.handler.Update(cmd.Info)
	case utils.VerbSubscribe:
		monitor, err := o.router.Get(cmd.Monitor)
		if err != nil {
			return err
		}
		return monitor.Subscribe(o.handler)
	case utils.VerbUnsubscribe:
		monitor, err := o.router.Get(cmd.Monitor)
		if err != nil {
			return err
		}
		return monitor.Unsubscribe()
	case utils.VerbClose:
		o.handler.LastBaggageClaimed()
		return nil
	default:
		return fmt.Errorf("%w: unknown verb %q", utils.ErrInvalidFeedLine, cmd.Verb)
	}
}
