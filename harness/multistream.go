package harness

import (
	"context"
	"strings"
	"time"
)

// ClientOutcome is the per-client record of a concurrent streaming run.
type ClientOutcome struct {
	ClientID         int    `json:"client_id"`
	Connected        bool   `json:"connected"`
	MessagesReceived int    `json:"messages_received"`
	Err              string `json:"error,omitempty"`
}

// MultiStreamStats is the aggregate record of a concurrent streaming run.
// Outcomes are in completion order; the counts are order-independent.
type MultiStreamStats struct {
	Clients       int             `json:"num_clients"`
	Successful    int             `json:"clients_successful"`
	Failed        int             `json:"clients_failed"`
	TotalMessages int             `json:"total_messages"`
	Outcomes      []ClientOutcome `json:"clients"`
}

// RunStreamClients runs count independent streaming collectors concurrently,
// one worker and one connection per simulated client, each collecting for
// duration d. A client is successful only if it connected and reported no
// error; TotalMessages sums message counts across successful clients.
func (h *Harness) RunStreamClients(ctx context.Context, count int, d time.Duration) MultiStreamStats {
	agg := MultiStreamStats{
		Clients:  count,
		Outcomes: []ClientOutcome{},
	}
	if count <= 0 {
		return agg
	}

	results := make(chan ClientOutcome)
	for i := 0; i < count; i++ {
		go func(id int) {
			results <- h.runStreamClient(ctx, id, d)
		}(i)
	}

	for i := 0; i < count; i++ {
		out := <-results
		agg.Outcomes = append(agg.Outcomes, out)
		if out.Connected && out.Err == "" {
			agg.Successful++
			agg.TotalMessages += out.MessagesReceived
		} else {
			agg.Failed++
		}
	}

	return agg
}

// runStreamClient owns one simulated client end to end: its own connection,
// its own collector, no state shared with its siblings.
func (h *Harness) runStreamClient(ctx context.Context, id int, d time.Duration) ClientOutcome {
	out := ClientOutcome{ClientID: id}

	client, closer, err := h.dial(ctx)
	if err != nil {
		out.Err = err.Error()
		return out
	}
	defer closer.Close()

	sess := h.CollectStream(ctx, client, d)
	out.Connected = sess.Connected
	out.MessagesReceived = sess.MessagesReceived
	if len(sess.Errors) > 0 {
		out.Err = strings.Join(sess.Errors, "; ")
	}
	return out
}
