package previewcache

import (
	"net/url"
	"os"
	"path"
	"strconv"
	"time"
)

type cacheTaskIO struct {
	loc PreviewLocation
	pre *CachedPreview
	err error
}

func (c *PreviewCache) processorIO(in <-chan *cacheTaskIO, out chan<- *cacheTaskIO) {
	for task := range in {
		if task.pre == nil {
			task.pre, task.err = c.cacheLoad(task.loc)
		} else {
			task.err = c.cacheSave(task.pre.Data, task.loc)
		}
		out <- task
	}
}

func (c *PreviewCache) processSave() {
	for k, v := range c.cache {
		if v.SyncedToDisk {
			continue
		}
		err := c.cacheSave(v.Data, k)
		if err != nil {
			c.logger.Printf("Failed to save preview of %s (%s): %v", k.String(), c.cacheGetFilename(k), err)
			continue
		}
		v.SyncedToDisk = true
	}
}

func (c *PreviewCache) cacheGetFilename(loc PreviewLocation) string {
	// Seeds are arbitrary strings, escape them before they touch the path.
	seed := url.PathEscape(loc.Seed)
	return path.Join(".", c.root, loc.Variant, seed+"-"+strconv.Itoa(loc.Size),
		strconv.Itoa(loc.Scale),
		strconv.Itoa(loc.X)+"x"+strconv.Itoa(loc.Z)+".png")
}

func (c *PreviewCache) cacheSave(dat []byte, loc PreviewLocation) error {
	storePath := c.cacheGetFilename(loc)
	err := os.MkdirAll(path.Dir(storePath), 0764)
	if err != nil {
		return err
	}
	return os.WriteFile(storePath, dat, 0664)
}

func (c *PreviewCache) cacheLoad(loc PreviewLocation) (*CachedPreview, error) {
	fp := c.cacheGetFilename(loc)
	b, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &CachedPreview{
		Data:         b,
		Loc:          loc,
		SyncedToDisk: true,
		ModTime:      c.getModTimeFp(fp),
		lastUse:      time.Now(),
	}, nil
}

func (c *PreviewCache) getModTimeFp(fp string) time.Time {
	info, err := os.Stat(fp)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
