package source

import (
	"bytes"
	"fmt"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/utils"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/pkg/catalog"
	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
	"github.com/gofiber/fiber/v2/log"
	"io"
	"os"
	"time"
)

const (
	errorFetchingURL  = "could not fetch %s: %v"
	errorEmptyBody    = "empty response from %s"
	errorOpeningFile  = "could not open %s: %v"
	logFetchingRemote = "Fetching catalog from %s"
	logOpeningFile    = "Reading catalog from %s"
	logUserAgent      = "User-Agent: %s"

	ctxBody  = "body"
	ctxError = "error"
)

// Fetcher downloads remote catalog files.
type Fetcher struct {
	Collector *colly.Collector
	Headers   map[string]string
}

// NewFetcher creates a Fetcher whose requests give up after timeout.
// URL revisits are allowed so the same source can be fetched again.
func NewFetcher(timeout time.Duration) *Fetcher {
	col := colly.NewCollector()
	col.AllowURLRevisit = true
	col.SetRequestTimeout(timeout)

	f := &Fetcher{
		Collector: col,
		Headers:   map[string]string{"Accept": "text/csv, text/plain, */*"},
	}

	col.OnRequest(func(r *colly.Request) {
		for k, v := range f.Headers {
			if len(k) > 0 && len(v) > 0 {
				r.Headers.Set(k, v)
			}
		}
	})
	col.OnResponse(func(r *colly.Response) {
		r.Ctx.Put(ctxBody, r.Body)
	})
	col.OnError(func(r *colly.Response, err error) {
		if r != nil && r.Ctx != nil {
			r.Ctx.Put(ctxError, err)
		}
	})

	return f
}

func (f *Fetcher) RandomizeUserAgent() {
	extensions.RandomUserAgent(f.Collector)
	f.Collector.OnRequest(func(r *colly.Request) {
		log.Debugf(logUserAgent, r.Headers.Get("User-Agent"))
	})
}

// Fetch downloads URL and returns the response body. Non-2xx responses are
// reported as errors.
func (f *Fetcher) Fetch(URL string) ([]byte, error) {
	ctx := colly.NewContext()

	err := f.Collector.Request("GET", URL, nil, ctx, nil)
	f.Collector.Wait()

	if err == nil {
		if fetchErr, ok := ctx.GetAny(ctxError).(error); ok {
			err = fetchErr
		}
	}
	if err != nil {
		return nil, fmt.Errorf(errorFetchingURL, URL, err)
	}

	body, _ := ctx.GetAny(ctxBody).([]byte)
	if len(body) == 0 {
		return nil, fmt.Errorf(errorEmptyBody, URL)
	}

	return body, nil
}

// Open returns a reader over the catalog at location, which is either an
// http(s) URL fetched with f or a path on the local filesystem.
func Open(location string, f *Fetcher) (io.ReadCloser, error) {
	if utils.IsRemoteSource(location) {
		log.Infof(logFetchingRemote, location)
		body, err := f.Fetch(location)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	log.Infof(logOpeningFile, location)
	file, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf(errorOpeningFile, location, err)
	}
	return file, nil
}

// LoadCatalog opens location and parses it into a Catalog. Every error
// wraps catalog.ErrDataUnavailable.
func LoadCatalog(location string, f *Fetcher) (*catalog.Catalog, error) {
	r, err := Open(location, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrDataUnavailable, err)
	}
	defer r.Close()

	return catalog.Load(r)
}
