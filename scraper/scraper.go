package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/config"
	"github.com/aluiziolira/go-scrape-foodmandu/models"
	"github.com/gocolly/colly/v2"
)

const responseKey = "response"

// Scraper issues the sequential, throttled requests against the vendor
// search and menu endpoints.
type Scraper struct {
	cfg       *config.Config
	collector *colly.Collector
	sleep     SleepFunc
	Metrics   *Metrics

	requestCount int
	anomalyCount int
	errorsByType map[string]int
}

// NewScraper builds a scraper instance configured from cfg.
func NewScraper(cfg *config.Config) (*Scraper, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Hostname()),
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.IgnoreRobotsTxt(),
	)

	collector.MaxBodySize = cfg.MaxBodySize
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	collector.OnResponse(func(r *colly.Response) {
		r.Ctx.Put(responseKey, r)
	})

	return &Scraper{
		cfg:          cfg,
		collector:    collector,
		sleep:        sleepContext,
		Metrics:      NewMetrics(),
		errorsByType: make(map[string]int),
	}, nil
}

// Result reports request and error counters accumulated since start.
func (s *Scraper) Result(start time.Time, records int, skipped []models.VendorID) *models.RunResult {
	errorsByType := make(map[string]int, len(s.errorsByType))
	for k, v := range s.errorsByType {
		errorsByType[k] = v
	}
	return &models.RunResult{
		StartTime:    start,
		EndTime:      time.Now(),
		RequestCount: s.requestCount,
		RecordCount:  records,
		Anomalies:    s.anomalyCount,
		Skipped:      skipped,
		ErrorsByType: errorsByType,
	}
}

// rawResponse is what the fetch primitive hands to the classifiers.
type rawResponse struct {
	status      int
	contentType string
	body        []byte
}

// get performs one GET with the fixed header set. Transport failures are
// classified and returned; every HTTP status is returned as a response.
func (s *Scraper) get(ctx context.Context, endpoint, target string) (*rawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reqCtx := colly.NewContext()
	s.requestCount++
	s.Metrics.IncRequest(endpoint)

	start := time.Now()
	err := s.collector.Request(http.MethodGet, target, nil, reqCtx, s.headers())
	s.Metrics.ObserveDuration(time.Since(start))
	if err != nil {
		classified := classifyError(err, 0)
		s.recordError(classified)
		return nil, fmt.Errorf("GET %s: %w", target, classified)
	}

	resp, ok := reqCtx.GetAny(responseKey).(*colly.Response)
	if !ok {
		return nil, fmt.Errorf("GET %s: no response received", target)
	}

	slog.Debug("response received",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(resp.Body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return &rawResponse{
		status:      resp.StatusCode,
		contentType: resp.Headers.Get("Content-Type"),
		body:        resp.Body,
	}, nil
}

func (s *Scraper) headers() http.Header {
	h := http.Header{}
	h.Set("User-Agent", s.cfg.UserAgent)
	h.Set("Accept", s.cfg.Accept)
	if s.cfg.Referer != "" {
		h.Set("Referer", s.cfg.Referer)
	}
	if s.cfg.Origin != "" {
		h.Set("Origin", s.cfg.Origin)
	}
	return h
}

func (s *Scraper) recordError(err error) {
	category := errorTypeLabel(err)
	s.errorsByType[category]++
	s.Metrics.IncError(category)
}

func (s *Scraper) recordAnomaly(endpoint string, u UnexpectedResponse) {
	s.anomalyCount++
	s.Metrics.IncUnexpected(endpoint)
	slog.Warn("response is not JSON",
		slog.String("endpoint", endpoint),
		slog.Int("status", u.Status),
		slog.String("content_type", u.ContentType),
		slog.String("body_preview", u.BodyPreview),
	)
}
