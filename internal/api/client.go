package api

import (
	"context"
	"net/http"
	"time"

	"github.com/andygrunwald/go-jira"
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/wrklg/jira-wrklg/internal/config"
	"github.com/wrklg/jira-wrklg/internal/debug"
	"github.com/wrklg/jira-wrklg/internal/worklog"
)

const instrumentationName = "github.com/wrklg/jira-wrklg/internal/api"

// DefaultPageSize はワークログ取得時の1ページあたりの件数
const DefaultPageSize = 1000

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	worklogCounter metric.Int64Counter
)

func init() {
	var err error
	worklogCounter, err = meter.Int64Counter(
		"wrklg.worklogs.fetched",
		metric.WithDescription("Number of worklog entries fetched from Jira"),
	)
	if err != nil {
		otel.Handle(err)
	}
}

// User は認証済みユーザー
type User struct {
	AccountID    string
	Name         string
	DisplayName  string
	EmailAddress string
}

// Session は認証済みの Jira API セッション
type Session struct {
	client   *jira.Client
	baseURL  string
	user     User
	pageSize int
}

// Option はセッションオプション
type Option func(*options)

type options struct {
	transport http.RoundTripper
	timeout   time.Duration
	pageSize  int
}

// WithTransport は下位の RoundTripper を差し替える
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithTimeout はHTTPタイムアウトを設定する。0 はタイムアウトなし
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithPageSize はワークログ取得のページサイズを設定する
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// Open は Basic 認証（ユーザー名 + APIトークン）でセッションを開く
// 現在のユーザーを取得して認証情報を検証する。失敗はリトライせずそのまま返す
func Open(ctx context.Context, baseURL, username, token string, opts ...Option) (*Session, error) {
	o := options{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}

	tp := jira.BasicAuthTransport{
		Username:  username,
		Password:  token,
		Transport: o.transport,
	}
	httpClient := tp.Client()
	httpClient.Timeout = o.timeout

	client, err := jira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "create jira client")
	}

	ctx, span := tracer.Start(ctx, "jira.Open",
		trace.WithAttributes(attribute.String("jira.url", baseURL)))
	defer span.End()

	debug.Log("authenticating", "url", baseURL, "username", username)
	self, resp, err := client.User.GetSelfWithContext(ctx)
	if err != nil {
		err = wrapError(resp, err)
		recordError(span, err)
		return nil, err
	}
	debug.Log("authenticated", "display_name", self.DisplayName)

	return &Session{
		client:  client,
		baseURL: baseURL,
		user: User{
			AccountID:    self.AccountID,
			Name:         self.Name,
			DisplayName:  self.DisplayName,
			EmailAddress: self.EmailAddress,
		},
		pageSize: o.pageSize,
	}, nil
}

// OpenFromConfig は設定からセッションを開く
// クレデンシャルがなければネットワークに触れずに config.ErrNotInitialized を返す
func OpenFromConfig(ctx context.Context, cfg *config.Store) (*Session, error) {
	cred, err := cfg.Credential()
	if err != nil {
		return nil, err
	}

	return Open(ctx, cred.URL, cred.Username, cred.Token,
		WithTimeout(cfg.HTTP().TimeoutDuration()),
		WithPageSize(cfg.Worklog().PageSize),
	)
}

// User は認証済みユーザーを返す
func (s *Session) User() User {
	return s.user
}

// BaseURL は接続先のURLを返す
func (s *Session) BaseURL() string {
	return s.baseURL
}

// pageQuery はワークログAPIのページングパラメータ
type pageQuery struct {
	StartAt    int `url:"startAt"`
	MaxResults int `url:"maxResults"`
}

// Worklogs は課題のワークログを全ページ取得する
func (s *Session) Worklogs(ctx context.Context, issue string) ([]worklog.Entry, error) {
	ctx, span := tracer.Start(ctx, "jira.Worklogs",
		trace.WithAttributes(attribute.String("jira.issue", issue)))
	defer span.End()

	entries := make([]worklog.Entry, 0)
	for {
		q := &pageQuery{StartAt: len(entries), MaxResults: s.pageSize}
		page, resp, err := s.client.Issue.GetWorklogsWithContext(ctx, issue, jira.WithQueryOptions(q))
		if err != nil {
			err = wrapError(resp, err)
			recordError(span, err)
			return nil, err
		}

		for _, rec := range page.Worklogs {
			entries = append(entries, toEntry(rec))
		}
		debug.Log("worklog page fetched", "issue", issue, "start_at", q.StartAt, "count", len(page.Worklogs), "total", page.Total)

		// 空ページまたは total に達したら終了
		if len(page.Worklogs) == 0 || len(entries) >= page.Total {
			break
		}
	}

	span.SetAttributes(attribute.Int("jira.worklogs", len(entries)))
	worklogCounter.Add(ctx, int64(len(entries)),
		metric.WithAttributes(attribute.String("jira.issue", issue)))
	return entries, nil
}

// toEntry は API のワークログを集計用のエントリに変換する
// 時刻はオフセットを捨てた壁時計時刻にそろえる
func toEntry(rec jira.WorklogRecord) worklog.Entry {
	e := worklog.Entry{
		Seconds: rec.TimeSpentSeconds,
		Comment: rec.Comment,
	}
	if rec.Author != nil {
		e.Author = rec.Author.DisplayName
	}
	if rec.Created != nil {
		e.Created = worklog.WallClock(time.Time(*rec.Created))
	}
	if rec.Updated != nil {
		e.Updated = worklog.WallClock(time.Time(*rec.Updated))
	}
	return e
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
