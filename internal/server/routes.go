package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"statline/internal/engine"
	"statline/internal/storage"
)

type statsOutput struct {
	Body StatsResponse
}

type logOutput struct {
	Body LogResponse
}

type trendInput struct {
	Period string `query:"period" default:"day" enum:"day,week,month,daily,weekly,monthly" doc:"Bucket size"`
	From   string `query:"from" doc:"First day, YYYY-MM-DD"`
	To     string `query:"to" doc:"Last day, YYYY-MM-DD"`
}

type trendOutput struct {
	Body TrendResponse
}

type rulesOutput struct {
	Body RulesResponse
}

type tasksOutput struct {
	Body TasksResponse
}

type taskPath struct {
	ID int64 `path:"id" doc:"Task id"`
}

type toggleOutput struct {
	Body ToggleResponse
}

func registerStats(api huma.API, svc *engine.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/stats",
		Summary:     "Current stat totals",
	}, func(ctx context.Context, _ *struct{}) (*statsOutput, error) {
		st, err := svc.State(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &statsOutput{Body: StatsResponse{Totals: st.Totals, LogSize: len(st.Log)}}, nil
	})
}

func registerLog(api huma.API, svc *engine.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-log",
		Method:      http.MethodGet,
		Path:        "/log",
		Summary:     "Progress log, newest first",
	}, func(ctx context.Context, _ *struct{}) (*logOutput, error) {
		st, err := svc.State(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		entries := []engine.ProgressLogEntry(st.Log)
		if entries == nil {
			entries = []engine.ProgressLogEntry{}
		}
		return &logOutput{Body: LogResponse{Entries: entries, Net: st.Log.NetDelta()}}, nil
	})
}

func registerTrend(api huma.API, svc *engine.Service, loc *time.Location) {
	huma.Register(api, huma.Operation{
		OperationID: "get-trend",
		Method:      http.MethodGet,
		Path:        "/trend",
		Summary:     "Logged deltas bucketed by day, week or month",
	}, func(ctx context.Context, in *trendInput) (*trendOutput, error) {
		period, err := engine.ParsePeriod(in.Period)
		if err != nil {
			return nil, handleError(err)
		}
		opts := engine.BucketOptions{Location: loc}
		if opts.From, err = parseDay(in.From, loc); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		if opts.To, err = parseDay(in.To, loc); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		series, err := svc.Series(ctx, period, opts)
		if err != nil {
			return nil, handleError(err)
		}
		return &trendOutput{Body: TrendResponse{Period: period, Buckets: series.Buckets}}, nil
	})
}

func registerRules(api huma.API, svc *engine.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-rules",
		Method:      http.MethodGet,
		Path:        "/rules",
		Summary:     "Scoring rules in effect",
	}, func(ctx context.Context, _ *struct{}) (*rulesOutput, error) {
		rt, err := svc.Rules(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &rulesOutput{Body: mapRules(rt)}, nil
	})
}

func registerTasks(api huma.API, svc *engine.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks",
	}, func(ctx context.Context, _ *struct{}) (*tasksOutput, error) {
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &tasksOutput{Body: TasksResponse{Tasks: mapTasks(tasks)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/toggle",
		Summary:     "Complete a pending task or roll back a completed one",
	}, func(ctx context.Context, in *taskPath) (*toggleOutput, error) {
		res, err := svc.ToggleTask(ctx, in.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &toggleOutput{Body: mapToggle(res)}, nil
	})
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, err
	}
	// Year 1 collides with the zero time, which means "unset".
	if t.Year() < 2 {
		return time.Time{}, fmt.Errorf("date %q is before year 2", s)
	}
	return t, nil
}

func mapTasks(items []storage.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(items))
	for i := range items {
		out = append(out, mapTask(items[i]))
	}
	return out
}
