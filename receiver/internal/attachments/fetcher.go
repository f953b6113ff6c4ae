package attachments

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// MaxFileSize is the largest attachment, in bytes, that will be downloaded.
const MaxFileSize = 8 * 1024 * 1024

var (
	// ErrNotDiscordCDN is returned for URLs outside Discord's CDN.
	ErrNotDiscordCDN = errors.New("Discord CDNからのファイルのみダウンロード可能です")
	// ErrUnsupportedContentType is returned for anything but PNG, JPEG, GIF
	// and WebP images.
	ErrUnsupportedContentType = errors.New(
		"サポートされていないファイル形式です。PNG, JPEG, GIF, WebPのみアップロード可能です",
	)
	// ErrTooLarge is returned when a file exceeds MaxFileSize.
	ErrTooLarge = errors.New("ファイルサイズが大きすぎます（上限: 8MB）")
)

var allowedContentTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
}

var allowedHosts = map[string]struct{}{
	"cdn.discordapp.com":   {},
	"media.discordapp.net": {},
}

// Attachment is a downloaded file.
type Attachment struct {
	// Data is the file's content.
	Data []byte
	// URL is where the file was downloaded from.
	URL string
	// ContentType is the media type the CDN served the file with.
	ContentType string
	// Filename is the last segment of the URL's path. It is empty when the
	// path has none.
	Filename string
}

// Fetcher is an interface for components that can download attachments
// uploaded to Discord.
type Fetcher interface {
	// Fetch downloads every URL concurrently. If any download fails, no
	// attachments are returned and the error lists every failure.
	Fetch(ctx context.Context, urls []string) ([]Attachment, error)
}

type fetcher struct {
	// httpSendFn is overridable for testing purposes
	httpSendFn func(*http.Request) (*http.Response, error)
}

// NewFetcher returns a Fetcher that downloads attachments using the provided
// http.Client.
func NewFetcher(httpClient *http.Client) Fetcher {
	return &fetcher{
		httpSendFn: httpClient.Do,
	}
}

func (f *fetcher) Fetch(
	ctx context.Context,
	urls []string,
) ([]Attachment, error) {
	attachments := make([]Attachment, len(urls))
	errs := make([]error, len(urls))
	wg := sync.WaitGroup{}
	for i, rawURL := range urls {
		wg.Add(1)
		go func(i int, rawURL string) {
			defer wg.Done()
			attachments[i], errs[i] = f.fetch(ctx, rawURL)
		}(i, rawURL)
	}
	wg.Wait()

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		result.ErrorFormat = formatBatchErrors
		return nil, result
	}
	return attachments, nil
}

func (f *fetcher) fetch(ctx context.Context, rawURL string) (Attachment, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !isDiscordCDN(u) {
		return Attachment{}, ErrNotDiscordCDN
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Attachment{}, errors.Wrapf(
			err,
			"error preparing http request for %q",
			rawURL,
		)
	}
	resp, err := f.httpSendFn(req)
	if err != nil {
		return Attachment{}, errors.Wrapf(err, "error downloading %q", rawURL)
	}
	defer func() {
		if resp.Body != nil {
			resp.Body.Close()
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Attachment{}, errors.Errorf(
			"ファイルのダウンロードに失敗しました: %d",
			resp.StatusCode,
		)
	}
	contentType := resp.Header.Get("Content-Type")
	if !isAllowedContentType(contentType) {
		return Attachment{}, ErrUnsupportedContentType
	}
	if resp.ContentLength > MaxFileSize {
		return Attachment{}, ErrTooLarge
	}
	if resp.Body == nil {
		return Attachment{
			URL:         rawURL,
			ContentType: contentType,
			Filename:    filename(u),
		}, nil
	}
	// Read one byte past the limit so that oversized bodies are detectable
	// without buffering all of them.
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize+1))
	if err != nil {
		return Attachment{}, errors.Wrapf(err, "error reading %q", rawURL)
	}
	if len(data) > MaxFileSize {
		return Attachment{}, ErrTooLarge
	}
	return Attachment{
		Data:        data,
		URL:         rawURL,
		ContentType: contentType,
		Filename:    filename(u),
	}, nil
}

func isDiscordCDN(u *url.URL) bool {
	if u.Scheme != "https" {
		return false
	}
	_, ok := allowedHosts[u.Hostname()]
	return ok
}

func isAllowedContentType(contentType string) bool {
	for _, allowed := range allowedContentTypes {
		if strings.HasPrefix(contentType, allowed) {
			return true
		}
	}
	return false
}

func filename(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func formatBatchErrors(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return "一部のファイルのダウンロードに失敗しました:\n" +
		strings.Join(lines, "\n")
}
