package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/executor"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/specialistvlad/forgego/internal/state"
	"gopkg.in/yaml.v3"
)

type report struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Type    string        `json:"type" yaml:"type"`
	Entries []reportEntry `json:"entries" yaml:"entries"`
}

type reportEntry struct {
	Name        string        `json:"name" yaml:"name"`
	Strategy    string        `json:"strategy" yaml:"strategy"`
	Record      *reportRecord `json:"record,omitempty" yaml:"record,omitempty"`
	Initialized []string      `json:"initialized,omitempty" yaml:"initialized,omitempty"`
	Unset       []string      `json:"unset,omitempty" yaml:"unset,omitempty"`
	Greeting    string        `json:"greeting,omitempty" yaml:"greeting,omitempty"`
	Error       string        `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMS  float64       `json:"duration_ms" yaml:"duration_ms"`
}

type reportRecord struct {
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`
}

// buildReport turns outcomes into the report model. Results and errors are
// read back from the state store; the outcome fills in when the store missed
// a write. Greetings and the type description are produced through method and
// static handles.
func (a *App) buildReport(ctx context.Context, outcomes []executor.Outcome, store state.Store) report {
	logger := ctxlog.FromContext(ctx)
	resolver := a.registry.Resolver()

	rep := report{RunID: a.runID, Entries: make([]reportEntry, 0, len(outcomes))}
	if h, err := resolver.ResolveStatic("Describe", nil); err == nil {
		if out, err := h.Invoke(); err == nil {
			rep.Type, _ = out[0].(string)
		}
	}

	greet, greetErr := resolver.ResolveMethod("Greet", nil)
	if greetErr != nil {
		logger.Warn("Greeting unavailable.", "error", greetErr)
	}

	for _, o := range outcomes {
		e := reportEntry{
			Name:       o.Entry.Name,
			Strategy:   o.Entry.Strategy,
			DurationMS: float64(o.Duration.Microseconds()) / 1000,
		}
		res, entryErr := storedOutcome(ctx, store, o)
		if entryErr != nil {
			e.Error = entryErr.Error()
			rep.Entries = append(rep.Entries, e)
			continue
		}

		rec := res.Record
		e.Record = &reportRecord{Name: rec.Name(), Age: rec.Age()}
		e.Initialized = res.Initialized
		e.Unset = res.Unset()
		if greet != nil {
			out, err := greet.Invoke(rec)
			if err != nil {
				logger.Warn("Greeting failed.", "entry", o.Entry.Name, "error", err)
			} else {
				e.Greeting, _ = out[0].(string)
			}
		}
		rep.Entries = append(rep.Entries, e)
	}
	return rep
}

// storedOutcome reads an entry's result or error from the store. An entry the
// store never saw finish falls back to what the executor returned.
func storedOutcome(ctx context.Context, store state.Store, o executor.Outcome) (*registry.Result, error) {
	logger := ctxlog.FromContext(ctx).With("entry", o.Entry.Name)

	status, err := store.GetStatus(ctx, o.Entry.Name)
	if err != nil {
		logger.Warn("Entry status unavailable, using executor outcome.", "error", err)
		return o.Result, o.Err
	}
	switch status {
	case state.Completed:
		res, err := store.GetResult(ctx, o.Entry.Name)
		if err == nil && res != nil {
			return res, nil
		}
	case state.Failed:
		entryErr, err := store.GetError(ctx, o.Entry.Name)
		if err == nil && entryErr != nil {
			return nil, entryErr
		}
	}
	logger.Warn("Entry state incomplete, using executor outcome.", "status", status.String())
	return o.Result, o.Err
}

func (a *App) writeReport(ctx context.Context, outcomes []executor.Outcome, store state.Store) error {
	rep := a.buildReport(ctx, outcomes, store)

	switch a.config.Output {
	case OutputJSON:
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case OutputYAML:
		enc := yaml.NewEncoder(a.outW)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(a.outW, rep)
	}
}

func writeText(w io.Writer, rep report) error {
	if _, err := fmt.Fprintln(w, rep.Type); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range rep.Entries {
		var detail string
		switch {
		case e.Error != "":
			detail = "error: " + e.Error
		default:
			detail = person.New(e.Record.Name, e.Record.Age).String()
			if len(e.Unset) > 0 {
				detail += " unset: " + strings.Join(e.Unset, ", ")
			}
			if e.Greeting != "" {
				detail += "\t" + e.Greeting
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Strategy, detail)
	}
	return tw.Flush()
}
