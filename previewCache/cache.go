package previewcache

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/maxsupermanhd/lac"
)

const (
	DefaultTaskQueueLen    = int(256)
	DefaultIOProcessors    = int(4)
	DefaultIOTasksQueueLen = int(256)
)

// PreviewLocation identifies one rendered preview image. Seed and Size
// pin the generation parameters, Variant is the renderer name, Scale
// is the output pixel width.
type PreviewLocation struct {
	Variant string
	Seed    string
	Size    int
	Scale   int
	X, Z    int
}

func (l PreviewLocation) String() string {
	return fmt.Sprintf("{%s:%s:%d at %ds %dx %dz}", l.Variant, l.Seed, l.Size, l.Scale, l.X, l.Z)
}

// CachedPreview holds encoded PNG bytes. Data is nil when the preview
// was never rendered.
type CachedPreview struct {
	Data         []byte
	Loc          PreviewLocation
	SyncedToDisk bool
	ModTime      time.Time
	lastUse      time.Time
}

type cacheTask struct {
	loc PreviewLocation
	dat []byte
	ret chan *CachedPreview
}

// PreviewCache keeps rendered previews in memory and mirrors them to
// disk. A single processor goroutine owns the map, IO happens on a
// worker pool so a slow disk never stalls lookups of cached entries.
type PreviewCache struct {
	ctx          context.Context
	logger       *log.Logger
	cfg          *lac.ConfSubtree
	root         string
	tasks        chan *cacheTask
	ioTasks      chan *cacheTaskIO
	ioReturn     chan *cacheTaskIO
	cache        map[PreviewLocation]*CachedPreview
	cacheReturn  map[PreviewLocation][]*cacheTask
	wg           sync.WaitGroup
	cacheStatLen atomic.Int64
}

func NewPreviewCache(logger *log.Logger, cfg *lac.ConfSubtree, ctx context.Context) *PreviewCache {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	taskQueueLen := gtzero(logger, cfg, DefaultTaskQueueLen, "taskQueueLen")
	ioQueueLen := gtzero(logger, cfg, DefaultIOTasksQueueLen, "ioQueueLen")
	ioProcessors := gtzero(logger, cfg, DefaultIOProcessors, "ioProcessors")
	c := &PreviewCache{
		ctx:         ctx,
		logger:      logger,
		cfg:         cfg,
		root:        cfg.GetDSString("cachedPreviews", "root"),
		tasks:       make(chan *cacheTask, taskQueueLen),
		ioTasks:     make(chan *cacheTaskIO, ioQueueLen),
		ioReturn:    make(chan *cacheTaskIO, ioQueueLen),
		cache:       map[PreviewLocation]*CachedPreview{},
		cacheReturn: map[PreviewLocation][]*cacheTask{},
	}
	c.wg.Add(ioProcessors)
	for i := 0; i < ioProcessors; i++ {
		go func() {
			c.processorIO(c.ioTasks, c.ioReturn)
			c.wg.Done()
		}()
	}
	go c.processor()
	return c
}

func (c *PreviewCache) WaitExit() {
	c.wg.Wait()
}

func (c *PreviewCache) processor() {
	autosaveInterval := c.cfg.GetDSInt(15, "autosaveInterval")
	autosaveTimer := time.NewTicker(time.Duration(autosaveInterval) * time.Second)

processorLoop:
	for {
		select {
		case <-c.ctx.Done():
			break processorLoop
		case task := <-c.tasks:
			c.processTask(task)
		case ret := <-c.ioReturn:
			c.processReturn(ret)
		case <-autosaveTimer.C:
			c.processSave()
		}
	}

	c.processSave()

	close(c.ioTasks)

	// Workers may still be pushing returns, keep the channel drained so
	// they can exit.
	go func() {
		for range c.ioReturn {
		}
	}()
	c.wg.Wait()
	close(c.ioReturn)
}

func (c *PreviewCache) processTask(task *cacheTask) {
	if task.dat == nil {
		c.processGet(task)
	} else {
		c.processSet(task)
	}
}

func (c *PreviewCache) processGet(task *cacheTask) {
	l, ok := c.cache[task.loc]
	if ok {
		l.lastUse = time.Now()
		task.ret <- copyCachedPreview(l)
		return
	}
	// Not in memory, queue a disk load and park the request until the
	// IO return comes back.
	r, ok := c.cacheReturn[task.loc]
	if ok {
		r = append(r, task)
	} else {
		r = []*cacheTask{task}
	}
	c.cacheReturn[task.loc] = r
	if !ok {
		c.ioTasks <- &cacheTaskIO{loc: task.loc}
	}
}

func (c *PreviewCache) processSet(task *cacheTask) {
	c.cache[task.loc] = &CachedPreview{
		Data:    task.dat,
		Loc:     task.loc,
		ModTime: time.Now(),
		lastUse: time.Now(),
	}
	c.cacheStatLen.Store(int64(len(c.cache)))
}

func (c *PreviewCache) processReturn(task *cacheTaskIO) {
	if task.err != nil {
		c.logger.Printf("Error reading preview at %s: %v", task.loc.String(), task.err)
	} else if task.pre != nil {
		if _, ok := c.cache[task.loc]; !ok {
			c.cache[task.loc] = task.pre
			c.cacheStatLen.Store(int64(len(c.cache)))
		}
	}

	ret, ok := c.cacheReturn[task.loc]
	if !ok {
		return
	}
	delete(c.cacheReturn, task.loc)
	for _, v := range ret {
		l, ok := c.cache[task.loc]
		if ok {
			l.lastUse = time.Now()
			v.ret <- copyCachedPreview(l)
		} else {
			v.ret <- &CachedPreview{Loc: task.loc}
		}
	}
}

func copyCachedPreview(p *CachedPreview) *CachedPreview {
	dat := make([]byte, len(p.Data))
	copy(dat, p.Data)
	return &CachedPreview{
		Data:         dat,
		Loc:          p.Loc,
		SyncedToDisk: p.SyncedToDisk,
		ModTime:      p.ModTime,
	}
}

// SetPreview stores freshly rendered PNG bytes, taking ownership of
// the slice.
func (c *PreviewCache) SetPreview(loc PreviewLocation, dat []byte) {
	c.tasks <- &cacheTask{
		loc: loc,
		dat: dat,
	}
}

// GetPreviewBlocking returns the cached preview, Data nil on miss.
func (c *PreviewCache) GetPreviewBlocking(loc PreviewLocation) *CachedPreview {
	ret := make(chan *CachedPreview)
	c.tasks <- &cacheTask{
		loc: loc,
		ret: ret,
	}
	return <-ret
}

func (c *PreviewCache) GetStats() map[string]any {
	return map[string]any{
		"root":                c.root,
		"io queue capacity":   cap(c.ioTasks),
		"io queue length":     len(c.ioTasks),
		"task queue capacity": cap(c.tasks),
		"task queue length":   len(c.tasks),
		"cached previews":     c.cacheStatLen.Load(),
	}
}

func gtzero(l *log.Logger, c *lac.ConfSubtree, d int, p ...string) int {
	v := c.GetDSInt(d, p...)
	if v > 0 {
		return v
	}
	l.Printf("Negative %v, defaulting to %d!", p, d)
	return d
}
