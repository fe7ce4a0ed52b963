package stream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/terrain"
)

// Keeping every previously seen buffer around would defeat the point
// of streaming, cap the conditional-request cache instead.
const maxTagCacheEntries = 512

type cachedChunk struct {
	tag  string
	data []byte
}

// HTTPFetcher fetches generated chunks from a VoxelStream server. It
// remembers the weak tag of every fetched key and sends If-None-Match
// so an unchanged chunk costs a 304 instead of a payload.
type HTTPFetcher struct {
	base    string
	client  *http.Client
	params  terrain.Params
	headers http.Header

	mu   sync.Mutex
	tags map[string]cachedChunk
}

// NewHTTPFetcher points a fetcher at a server base URL like
// "http://localhost:3003". params is the template parameter set, its
// Coord field is replaced per fetch.
func NewHTTPFetcher(base string, params terrain.Params) *HTTPFetcher {
	return &HTTPFetcher{
		base:    strings.TrimSuffix(base, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		params:  params.Normalized(),
		headers: http.Header{},
		tags:    map[string]cachedChunk{},
	}
}

// SetHeader attaches a header to every request, e.g. a session id.
func (f *HTTPFetcher) SetHeader(key, value string) {
	f.headers.Set(key, value)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, coord primitives.ChunkCoord) (primitives.Buffer, error) {
	p := f.params
	p.Coord = coord
	key := terrain.KeyOf(p)

	q := url.Values{}
	q.Set("size", strconv.Itoa(p.Size))
	q.Set("seed", p.WorldSeed)
	q.Set("base", p.BaseBlock.String())
	q.Set("surfaceScale", strconv.FormatFloat(p.SurfaceScale, 'g', -1, 64))
	q.Set("cavesScale", strconv.FormatFloat(p.CavesScale, 'g', -1, 64))
	q.Set("cavesThreshold", strconv.FormatFloat(p.CavesThreshold, 'g', -1, 64))
	q.Set("grassDepth", strconv.Itoa(p.GrassDepth))
	q.Set("dirtDepth", strconv.Itoa(p.DirtDepth))
	u := fmt.Sprintf("%s/api/v1/chunks/%d/%d/%d?%s", f.base, coord.X, coord.Y, coord.Z, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	for k := range f.headers {
		req.Header.Set(k, f.headers.Get(k))
	}
	f.mu.Lock()
	prev, seen := f.tags[key]
	f.mu.Unlock()
	if seen {
		req.Header.Set("If-None-Match", `W/"`+prev.tag+`"`)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && seen {
		buf := make(primitives.Buffer, len(prev.data))
		copy(buf, prev.data)
		return buf, nil
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("chunk fetch returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	want := p.Size * p.Size * p.Size
	if len(body) != want {
		return nil, fmt.Errorf("chunk payload is %d bytes, want %d", len(body), want)
	}

	if tag := parseWeakTag(resp.Header.Get("ETag")); tag != "" {
		kept := make([]byte, len(body))
		copy(kept, body)
		f.mu.Lock()
		if len(f.tags) >= maxTagCacheEntries {
			for k := range f.tags {
				delete(f.tags, k)
				break
			}
		}
		f.tags[key] = cachedChunk{tag: tag, data: kept}
		f.mu.Unlock()
	}
	return body, nil
}

func parseWeakTag(etag string) string {
	etag = strings.TrimPrefix(etag, "W/")
	return strings.Trim(etag, `"`)
}

// LocalFetcher generates chunks in-process, used when no server is
// configured.
type LocalFetcher struct {
	Params terrain.Params
}

func (f LocalFetcher) Fetch(_ context.Context, coord primitives.ChunkCoord) (primitives.Buffer, error) {
	p := f.Params
	p.Coord = coord
	return terrain.Generate(p), nil
}
