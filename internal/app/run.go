package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/report"
	"github.com/specialistvlad/bbdeps/internal/trigger"
)

// Run prints the report of every platform and, when a listen port is
// configured, serves the query API until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, p := range a.platforms {
		pctx := ctxlog.With(ctx, "platform", p.name)

		if a.config.Dump {
			if err := report.Dump(pctx, a.outW, p.name, p.graph); err != nil {
				return fmt.Errorf("failed to write report for %s: %w", p.name, err)
			}
		}

		if len(p.finished) > 0 {
			triggers := trigger.Downstream(pctx, p.graph, p.finished...)
			if err := report.Triggers(a.outW, p.name, p.finished, triggers); err != nil {
				return fmt.Errorf("failed to write triggers for %s: %w", p.name, err)
			}
		}
	}

	if a.config.ListenPort > 0 {
		if err := a.serve(ctx, a.config.ListenPort); err != nil {
			return fmt.Errorf("query server failed: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
