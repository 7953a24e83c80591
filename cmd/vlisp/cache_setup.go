package main

import (
	"os"
	"path/filepath"

	"vlisp/internal/driver"
	"vlisp/internal/project"
)

// openTokenCache resolves the token disk cache for a read command. The
// nearest vlisp.toml can disable the cache or move its directory; a
// relative [cache] dir is anchored at the manifest. A manifest that fails
// to parse is an error, while a cache directory that fails to open only
// disables caching.
func openTokenCache(noCache bool) (*driver.DiskCache, error) {
	if noCache {
		return nil, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil
	}
	manifest, manifestPath, ok, err := project.LoadNearest(wd)
	if err != nil {
		return nil, err
	}
	dir := ""
	if ok {
		if manifest.Cache.Disabled {
			return nil, nil
		}
		dir = manifest.Cache.Dir
		if dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(manifestPath), dir)
		}
	}
	if dir == "" {
		dir, err = driver.DefaultCacheDir()
		if err != nil {
			return nil, nil
		}
	}
	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		return nil, nil
	}
	return cache, nil
}
