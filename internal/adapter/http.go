package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

const (
	hashHeader    = "HashSHA256"
	traceIDHeader = "X-Trace-ID"

	connectRetries   = 2
	connectRetryWait = 300 * time.Millisecond
)

type httpAdminAdapter struct {
	client *utils.HTTPClient

	// signer is nil when no hash key is configured.
	signer *utils.Signer
	ids    utils.IDGenerator

	logger *logger.Logger
}

// NewHTTPAdminAdapter constructs the resty implementation of [AdminAdapter]
// for the node at cfg.HTTPAddress. A missing scheme defaults to http://.
// Requests that fail before reaching the node are retried; non-2xx answers
// are not.
func NewHTTPAdminAdapter(cfg config.CLIConfig, logger *logger.Logger) (AdminAdapter, error) {
	if strings.TrimSpace(cfg.HTTPAddress) == "" {
		return nil, ErrEmptyAddress
	}
	baseURL := utils.NormalizeBaseURL(cfg.HTTPAddress)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address %q: %w", cfg.HTTPAddress, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid adapter http address %q: no host", cfg.HTTPAddress)
	}

	a := &httpAdminAdapter{
		client: utils.NewHTTPClient(
			utils.WithBaseURL(baseURL),
			utils.WithTimeout(cfg.RequestTimeout),
			utils.WithRetries(connectRetries, connectRetryWait),
		),
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
	if cfg.HashKey != "" {
		a.signer = utils.NewSigner(cfg.HashKey)
	}

	return a, nil
}

func (a *httpAdminAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo
	err := a.do(a.request(ctx).SetHeader("Accept", "application/json"), "GET", "/api/version/", &info)
	return info, err
}

func (a *httpAdminAdapter) Connectivity(ctx context.Context) (models.ConnectivityStatus, error) {
	var status models.ConnectivityStatus
	err := a.do(a.request(ctx), "GET", "/api/connectivity/", &status)
	return status, err
}

func (a *httpAdminAdapter) SetOnlineStatus(ctx context.Context, online bool) (models.ConnectivityStatus, error) {
	req, err := a.signedRequest(ctx, map[string]bool{"online": online})
	if err != nil {
		return models.ConnectivityStatus{}, err
	}

	var status models.ConnectivityStatus
	err = a.do(req, "PUT", "/api/connectivity/", &status)
	return status, err
}

func (a *httpAdminAdapter) GetSyncStatus(ctx context.Context, accountID string) (models.SyncStatus, error) {
	var status models.SyncStatus
	err := a.do(a.request(ctx), "GET", accountPath(accountID, "sync/status"), &status)
	return status, err
}

func (a *httpAdminAdapter) GetStats(ctx context.Context, accountID string) (models.JournalStats, error) {
	var stats models.JournalStats
	err := a.do(a.request(ctx), "GET", accountPath(accountID, "sync/stats"), &stats)
	return stats, err
}

func (a *httpAdminAdapter) TriggerSync(ctx context.Context, accountID string) (models.CycleSummary, error) {
	var summary models.CycleSummary
	err := a.do(a.request(ctx), "POST", accountPath(accountID, "sync/trigger"), &summary)
	return summary, err
}

func (a *httpAdminAdapter) RetryFailed(ctx context.Context, accountID string) (models.CycleSummary, error) {
	var summary models.CycleSummary
	err := a.do(a.request(ctx), "POST", accountPath(accountID, "sync/retry"), &summary)
	return summary, err
}

// ListJournal sends statuses as one comma-separated status parameter.
func (a *httpAdminAdapter) ListJournal(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	req := a.request(ctx)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		req.SetQueryParam("status", strings.Join(statuses, ","))
	}
	if filter.TableName != "" {
		req.SetQueryParam("table", filter.TableName)
	}
	if filter.Order != "" {
		req.SetQueryParam("order", string(filter.Order))
	}
	if filter.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(filter.Offset))
	}

	var entries []models.JournalEntry
	err := a.do(req, "GET", accountPath(filter.AccountID, "journal"), &entries)
	return entries, err
}

func (a *httpAdminAdapter) ClearSyncedEntries(ctx context.Context, accountID string, before time.Time) (models.PurgeResult, error) {
	req := a.request(ctx).SetQueryParam("before", before.UTC().Format(time.RFC3339))

	var res models.PurgeResult
	err := a.do(req, "DELETE", accountPath(accountID, "journal/synced"), &res)
	return res, err
}

func (a *httpAdminAdapter) GetConflicts(ctx context.Context, accountID string) ([]models.SyncConflict, error) {
	var conflicts []models.SyncConflict
	err := a.do(a.request(ctx), "GET", accountPath(accountID, "conflicts"), &conflicts)
	return conflicts, err
}

func (a *httpAdminAdapter) GetConflict(ctx context.Context, accountID, conflictID string) (models.SyncConflict, error) {
	var conflict models.SyncConflict
	err := a.do(a.request(ctx), "GET", accountPath(accountID, "conflicts/"+url.PathEscape(conflictID)), &conflict)
	return conflict, err
}

// ResolveConflict addresses the conflict by path; the body carries the
// resolution fields only.
func (a *httpAdminAdapter) ResolveConflict(ctx context.Context, r models.ResolveRequest) (models.SyncConflict, error) {
	body := struct {
		Resolution   models.Resolution `json:"resolution"`
		ResolvedData models.Record     `json:"resolved_data,omitempty"`
		ResolvedBy   string            `json:"resolved_by"`
	}{r.Resolution, r.ResolvedData, r.ResolvedBy}

	req, err := a.signedRequest(ctx, body)
	if err != nil {
		return models.SyncConflict{}, err
	}

	var conflict models.SyncConflict
	err = a.do(req, "POST", accountPath(r.AccountID, "conflicts/"+url.PathEscape(r.ConflictID)+"/resolve"), &conflict)
	return conflict, err
}

func (a *httpAdminAdapter) PullData(ctx context.Context, r models.PullRequest) (models.PullResult, error) {
	req, err := a.signedRequest(ctx, r)
	if err != nil {
		return models.PullResult{}, err
	}

	var res models.PullResult
	err = a.do(req, "POST", accountPath(r.AccountID, "pull"), &res)
	return res, err
}

// request starts a request carrying a fresh trace id, so node logs of one
// edgectl call can be found by it.
func (a *httpAdminAdapter) request(ctx context.Context) *resty.Request {
	return a.client.R().
		SetContext(ctx).
		SetHeader(traceIDHeader, a.ids.Generate())
}

// signedRequest encodes body once and signs exactly the bytes that are sent.
func (a *httpAdminAdapter) signedRequest(ctx context.Context, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req := a.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if a.signer != nil {
		req.SetHeader(hashHeader, a.signer.Sign(payload))
	}
	return req, nil
}

func (a *httpAdminAdapter) do(req *resty.Request, method, path string, result any) error {
	log := a.logger.GetChildLogger()

	resp, err := req.Execute(method, path)
	if err != nil {
		log.Err(err).Str("func", "*httpAdminAdapter.do").Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).Str("func", "*httpAdminAdapter.do").
			Str("trace_id", resp.Request.Header.Get(traceIDHeader)).
			Int("status", resp.StatusCode()).Msg("admin API rejected request")
		return err
	}

	if result == nil {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return nil
}

func accountPath(accountID, suffix string) string {
	return "/api/accounts/" + url.PathEscape(accountID) + "/" + suffix
}
