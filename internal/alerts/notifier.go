package alerts

import (
	"context"

	"github.com/dmitrijs2005/mindlens/internal/logging"
)

// Event is a risk notification handed to the delivery collaborator.
type Event struct {
	DocID     string
	RiskLabel string
	Excerpt   string
}

// Notifier delivers risk events. Delivery is external to the core: the
// pipeline emits each event at most once per document and never retries a
// failed delivery.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier records events in the log instead of delivering them. It is
// the default when no delivery channel is configured.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	n.log.Warn(ctx, "risk alert",
		"doc_id", event.DocID, "risk_label", event.RiskLabel, "excerpt", event.Excerpt)
	return nil
}
