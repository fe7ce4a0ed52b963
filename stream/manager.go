package stream

import (
	"context"
	"log"
	"sync"

	"github.com/maxsupermanhd/VoxelStream/primitives"
	"github.com/maxsupermanhd/VoxelStream/terrain"
)

// Renderable is whatever the render collaborator hands back for an
// uploaded chunk. Release frees the underlying resource and must be
// called exactly once, synchronously with eviction.
type Renderable interface {
	Release()
}

// Renderer is the consumed rendering collaborator. The manager never
// looks inside the returned handle.
type Renderer interface {
	Upload(buf primitives.Buffer, size int) (Renderable, error)
}

// Fetcher retrieves the generated buffer for a chunk coordinate,
// typically over HTTP. Any error triggers the local fallback.
type Fetcher interface {
	Fetch(ctx context.Context, coord primitives.ChunkCoord) (primitives.Buffer, error)
}

// Manager tracks which chunk columns are resident or in flight around
// a moving observer and owns every render handle it created. Streaming
// covers the x/z grid at a fixed chunk y.
type Manager struct {
	fetcher    Fetcher
	renderer   Renderer
	viewRadius int
	chunkY     int
	params     terrain.Params // template, Coord substituted per load

	ctx       context.Context
	ctxCancel context.CancelFunc
	wg        sync.WaitGroup

	mu       sync.Mutex
	resident map[primitives.ColumnCoord]Renderable
	inflight map[primitives.ColumnCoord]struct{}
	closed   bool
}

// NewManager builds a stream manager. params is the template parameter
// set sent with every fetch and reused by the local fallback; its
// Coord.Y picks the fixed chunk y the stream covers.
func NewManager(fetcher Fetcher, renderer Renderer, viewRadius int, params terrain.Params) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		fetcher:    fetcher,
		renderer:   renderer,
		viewRadius: viewRadius,
		chunkY:     params.Coord.Y,
		params:     params.Normalized(),
		ctx:        ctx,
		ctxCancel:  cancel,
		resident:   map[primitives.ColumnCoord]Renderable{},
		inflight:   map[primitives.ColumnCoord]struct{}{},
	}
}

// EnsureAround requests every column within viewRadius (Chebyshev) of
// the observer's chunk coordinate that is neither resident nor in
// flight, then evicts residents beyond viewRadius+1. The one chunk
// margin keeps boundary crossings from thrashing load/evict.
func (m *Manager) EnsureAround(cx, cz int) {
	center := primitives.ColumnCoord{X: cx, Z: cz}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	for z := cz - m.viewRadius; z <= cz+m.viewRadius; z++ {
		for x := cx - m.viewRadius; x <= cx+m.viewRadius; x++ {
			m.beginLoad(primitives.ColumnCoord{X: x, Z: z})
		}
	}
	for c, handle := range m.resident {
		if primitives.ChebyshevDist(c, center) > m.viewRadius+1 {
			handle.Release()
			delete(m.resident, c)
		}
	}
}

// LoadAt begins an asynchronous load of a single column unless it is
// already resident or in flight.
func (m *Manager) LoadAt(cx, cz int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.beginLoad(primitives.ColumnCoord{X: cx, Z: cz})
}

// beginLoad is called with m.mu held.
func (m *Manager) beginLoad(c primitives.ColumnCoord) {
	if _, ok := m.resident[c]; ok {
		return
	}
	if _, ok := m.inflight[c]; ok {
		return
	}
	m.inflight[c] = struct{}{}
	m.wg.Add(1)
	go m.load(c)
}

func (m *Manager) load(c primitives.ColumnCoord) {
	defer m.wg.Done()
	// The inflight marker is cleared on every exit path.
	defer func() {
		m.mu.Lock()
		delete(m.inflight, c)
		m.mu.Unlock()
	}()

	coord := primitives.ChunkCoord{X: c.X, Y: m.chunkY, Z: c.Z}
	buf, err := m.fetcher.Fetch(m.ctx, coord)
	if err != nil {
		m.mu.Lock()
		closed := m.closed
		m.mu.Unlock()
		if closed {
			return
		}
		// Never leave a hole in the world: fall back to generating
		// with the template parameters. The result may differ from
		// what the remote would have produced, which is accepted.
		log.Printf("Chunk %v fetch failed, generating locally: %v", c, err)
		p := m.params
		p.Coord = coord
		buf = terrain.Generate(p)
	}

	handle, err := m.renderer.Upload(buf, m.params.Size)
	if err != nil {
		log.Printf("Chunk %v upload failed: %v", c, err)
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		handle.Release()
		return
	}
	if old, ok := m.resident[c]; ok {
		old.Release()
	}
	m.resident[c] = handle
	m.mu.Unlock()
}

// IsResident reports whether a column currently has a render handle.
func (m *Manager) IsResident(cx, cz int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.resident[primitives.ColumnCoord{X: cx, Z: cz}]
	return ok
}

// ResidentCount returns the number of columns currently resident.
func (m *Manager) ResidentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resident)
}

// Wait blocks until no load is in flight.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Close releases every resident handle and stops new loads. Loads
// already in flight finish on their own and are discarded on
// completion without touching resident.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for c, handle := range m.resident {
		handle.Release()
		delete(m.resident, c)
	}
	m.mu.Unlock()
	m.ctxCancel()
}
