package download

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/utils/fileutil"
	"github.com/xiaorui77/ifacex-watch/pkg/errs"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

const (
	UserAgent = "ifacex-watch/1.0"

	// maxErrorBody bounds how much of a non-2xx body is read for its title.
	maxErrorBody = 64 << 10
)

type result struct {
	list *model.TaskList
	err  error
}

// Downloader fetches tasks/index.json and classifies the outcome into errs
// kinds. Every non-2xx status is errs.KindHTTP; callers that treat some
// statuses as auth failures reclassify them.
type Downloader struct {
	client *http.Client
}

func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   15 * time.Second,
					KeepAlive: 10 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   2,
				IdleConnTimeout:       60 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// Fetch races the request against timeout. When the timer wins the request
// context is cancelled and errs.KindTimeout is returned at once; the late
// result is dropped.
func (d *Downloader) Fetch(ctx context.Context, url string, timeout time.Duration) (*model.TaskList, error) {
	reqID := uuid.New().String()[:8]
	log := logrus.WithFields(logrus.Fields{"catalog": "download", "reqId": reqID})

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		list, err := d.get(reqCtx, url, log)
		done <- result{list: list, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			log.Warnf("fetch failed: %v", res.err)
		} else {
			log.Debugf("fetched %d tasks", len(res.list.Tasks))
		}
		return res.list, res.err
	case <-timer.C:
		log.Warnf("fetch timed out after %v", timeout)
		return nil, errs.Timeout(context.DeadlineExceeded)
	case <-ctx.Done():
		log.Debugf("fetch aborted: %v", ctx.Err())
		return nil, ctx.Err()
	}
}

func (d *Downloader) get(ctx context.Context, url string, log *logrus.Entry) (*model.TaskList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Network(err)
	}
	d.beforeReq(req)

	resp, err := d.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.HTTP(resp.StatusCode, errorTitle(resp))
	}

	body := fileutil.NewVisualReader(resp.Body)
	list := &model.TaskList{}
	if err := json.NewDecoder(body).Decode(list); err != nil {
		return nil, errs.Decode(err)
	}
	log.Debugf("read %d bytes, status %d", body.Cur, resp.StatusCode)
	return list, nil
}

func (d *Downloader) beforeReq(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
}

// errorTitle returns the <title> of an HTML error page, or "".
func errorTitle(resp *http.Response) string {
	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		logrus.Debugf("[download] parse error page failed: %v", err)
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

