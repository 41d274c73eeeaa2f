package rest

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/fastygo/warehouse-console/domain"
)

// Dashboard time ranges accepted by the leadership dashboard.
const (
	RangeWeek    = "WEEK"
	RangeMonth   = "MONTH"
	RangeQuarter = "QUARTER"
	RangeYear    = "YEAR"
)

type ReportAPI struct {
	client Requester
}

// Leadership returns the leadership dashboard; an empty range means MONTH.
func (a *ReportAPI) Leadership(ctx context.Context, timeRange string) (json.RawMessage, error) {
	timeRange = strings.ToUpper(strings.TrimSpace(timeRange))
	if timeRange == "" {
		timeRange = RangeMonth
	}
	resp, err := a.client.Get(ctx, "/reports/dashboard/leadership", url.Values{"time_range": {timeRange}})
	if err != nil {
		return nil, err
	}
	return dashboard(resp.JSON, resp.Data())
}

func (a *ReportAPI) Operation(ctx context.Context) (json.RawMessage, error) {
	resp, err := a.client.Get(ctx, "/reports/dashboard/operation", nil)
	if err != nil {
		return nil, err
	}
	return dashboard(resp.JSON, resp.Data())
}

func dashboard(isJSON bool, data []byte) (json.RawMessage, error) {
	if !isJSON {
		return nil, domain.NewError(domain.ErrCodeUnrecognized, "dashboard is not JSON")
	}
	return append(json.RawMessage(nil), data...), nil
}
